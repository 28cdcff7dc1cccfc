// Package archive implements the create, list and extract operations over
// a sqlar archive file.
package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sqlar/entry"
	"sqlar/store"
)

// Create builds a new archive at archivePath holding every filesystem
// object beneath the given roots, the roots themselves included. Entry
// names are the paths exactly as walked, so overlapping roots can collide
// on a name and fail the insert. When archivePath already exists nothing
// is written and no error is returned.
//
// Objects that cannot be walked, stat'ed or read are logged and skipped;
// the walk continues.
func Create(log *slog.Logger, archivePath string, roots []string) error {
	if _, err := os.Stat(archivePath); err == nil {
		log.Warn("archive already exists, not creating a new one", "archive", archivePath)
		return nil
	}

	s, err := store.Create(archivePath)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, root := range roots {
		if err := addTree(log, s, root); err != nil {
			return err
		}
	}
	return nil
}

// addTree walks one root and inserts an entry per object found
func addTree(log *slog.Logger, s *store.Store, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn("failed to read entry", "path", path, "error", err)
			return nil
		}

		mode := entry.PosixMode(info.Mode())
		e := &entry.Entry{
			Name:  path,
			Mode:  mode,
			Type:  entry.TypeFromMode(mode),
			Mtime: mtimeOf(info),
		}

		if e.Type == entry.File {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Warn("could not read file", "path", path, "error", err)
				return nil
			}
			e.Data = data
			e.Size = int64(len(data))
		}

		log.Info("adding",
			"path", path,
			"type", e.Type.String(),
			"mode", fmt.Sprintf("%o", entry.Perm(mode)),
			"mtime", e.Mtime,
		)

		return s.Insert(e)
	})
}

// mtimeOf returns a modification timestamp, falling back to epoch 0 for
// missing or pre-epoch times
func mtimeOf(info os.FileInfo) int64 {
	mtime := info.ModTime()
	if mtime.IsZero() {
		return 0
	}
	if ts := mtime.Unix(); ts > 0 {
		return ts
	}
	return 0
}
