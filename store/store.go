// Package store owns the on-disk archive file: one SQLite database holding
// the single sqlar table. Insertion is the only mutation; entries are read
// back through a two-mode iteration, with or without their content.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Just included for the driver
	_ "github.com/mattn/go-sqlite3"

	"sqlar/codec"
	"sqlar/entry"
)

//go:embed migrations/*.sql
var migrations embed.FS

// getConnStr returns a DSN for a given archive path
func getConnStr(path string, create bool) string {
	mode := "rw"
	if create {
		mode = "rwc"
	}
	return fmt.Sprintf("file:%s?mode=%s&_foreign_keys=true", path, mode)
}

// Store holds the single connection to an archive for the duration of a
// command
type Store struct {
	db *sql.DB
}

// Open opens an existing archive file
func Open(path string) (*Store, error) {
	return open(path, false)
}

// Create opens a new archive file and installs the sqlar schema
func Create(path string) (*Store, error) {
	s, err := open(path, true)
	if err != nil {
		return nil, err
	}

	if err := s.checkMigration(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func open(path string, create bool) (*Store, error) {
	db, err := sql.Open("sqlite3", getConnStr(path, create))
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the archive connection
func (s *Store) Close() error {
	return s.db.Close()
}

// checkMigration brings the archive schema up to date
func (s *Store) checkMigration() error {
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}

	migrationSource, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}

	migration, err := migrate.NewWithInstance("iofs", migrationSource, "sqlar", driver)
	if err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("init archive schema: %w", err)
	}

	return nil
}

// Insert adds one entry as one row. File content runs through the codec;
// directories and unsupported entries store NULL. The entry's Mode must
// carry the full st_mode bits. A duplicate name fails the insert.
func (s *Store) Insert(e *entry.Entry) error {
	var data interface{}
	if e.Type == entry.File {
		stored, err := codec.Compress(e.Data)
		if err != nil {
			return fmt.Errorf("compress %s: %w", e.Name, err)
		}
		data = stored
	}

	_, err := s.db.Exec(
		"INSERT INTO sqlar (name, mode, mtime, sz, data) VALUES (?, ?, ?, ?, ?)",
		e.Name, e.Mode, e.Mtime, e.Size, data,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", e.Name, err)
	}
	return nil
}

// ForEach runs fn over every entry in statement order; no particular order
// is guaranteed, in particular not directories before their children. With
// withData set the content is fetched and decoded, otherwise only metadata
// is read. Either way CompressedSize reports the stored length.
func (s *Store) ForEach(withData bool, fn func(*entry.Entry) error) error {
	query := "SELECT name, mode, mtime, sz, COALESCE(LENGTH(data), 0) FROM sqlar"
	if withData {
		query = "SELECT name, mode, mtime, sz, COALESCE(LENGTH(data), 0), data FROM sqlar"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e       entry.Entry
			rawMode uint32
			data    []byte
		)

		dest := []interface{}{&e.Name, &rawMode, &e.Mtime, &e.Size, &e.CompressedSize}
		if withData {
			dest = append(dest, &data)
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		e.Type = entry.TypeFromMode(rawMode)
		e.Mode = entry.Perm(rawMode)
		if withData && e.Type == entry.File {
			e.Data, err = codec.Decompress(data, e.Size)
			if err != nil {
				return fmt.Errorf("decode %s: %w", e.Name, err)
			}
		}

		if err := fn(&e); err != nil {
			return err
		}
	}

	return rows.Err()
}

// TotalSize returns the sum of original entry sizes in the archive
func (s *Store) TotalSize() (int64, error) {
	var total int64
	if err := s.db.QueryRow("SELECT COALESCE(SUM(sz), 0) FROM sqlar").Scan(&total); err != nil {
		return 0, fmt.Errorf("read archive: %w", err)
	}
	return total, nil
}
