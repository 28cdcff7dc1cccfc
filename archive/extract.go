package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/disk"

	"sqlar/entry"
	"sqlar/store"
)

// DefaultDestination derives an extraction root from an archive path by
// stripping the filename's extension.
func DefaultDestination(archivePath string) string {
	base := filepath.Base(archivePath)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Extract materializes every archive entry under dest, restoring content,
// permission bits and modification times. Entries with absolute or
// parent-traversing names are skipped with a warning so nothing can be
// written outside dest; unsupported entry types are skipped as well. Any
// filesystem failure aborts the extraction.
func Extract(log *slog.Logger, archivePath, dest string) error {
	s, err := store.Open(archivePath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dest, err)
	}

	checkSpace(log, s, dest)

	return s.ForEach(true, func(e *entry.Entry) error {
		if filepath.IsAbs(e.Name) || escapesRoot(e.Name) {
			log.Warn("refusing to extract unsafe path", "name", e.Name)
			return nil
		}

		target := filepath.Join(dest, e.Name)

		switch e.Type {
		case entry.Dir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case entry.File:
			// Entries come back in no guaranteed order, so the parent
			// directory may not exist yet
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", filepath.Dir(target), err)
			}
			if err := os.WriteFile(target, e.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
		default:
			log.Warn("skipping unsupported entry", "name", e.Name)
			return nil
		}

		log.Info("extracted", "name", e.Name, "target", target)

		if err := os.Chmod(target, os.FileMode(e.Mode)); err != nil {
			return fmt.Errorf("set mode on %s: %w", target, err)
		}
		mtime := time.Unix(e.Mtime, 0)
		if err := os.Chtimes(target, mtime, mtime); err != nil {
			return fmt.Errorf("set mtime on %s: %w", target, err)
		}
		return nil
	})
}

// escapesRoot reports whether name contains a parent-directory segment
func escapesRoot(name string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// checkSpace warns when the destination filesystem reports less free space
// than the archive's total uncompressed size. Advisory only: SUM(sz) knows
// nothing about files being overwritten in place.
func checkSpace(log *slog.Logger, s *store.Store, dest string) {
	total, err := s.TotalSize()
	if err != nil {
		log.Warn("could not compute archive size", "error", err)
		return
	}

	usage, err := disk.Usage(dest)
	if err != nil {
		log.Warn("could not read free space", "path", dest, "error", err)
		return
	}

	if uint64(total) > usage.Free {
		log.Warn("destination may not have enough free space",
			"needed", total, "free", usage.Free)
	}
}
