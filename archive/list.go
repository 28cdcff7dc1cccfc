package archive

import (
	"sqlar/entry"
	"sqlar/store"
)

// Row is one listing line for an archived entry
type Row struct {
	Name string
	Type entry.FileType
	// Permission bits only
	Mode  uint32
	Mtime int64
	Size  int64
	// Stored length relative to original size, in percent. 0 for
	// directories and unsupported entries, which carry no content.
	Ratio float64
}

// List runs fn over a listing row for every entry in the archive. Only
// metadata is fetched and the archive is never written; each call issues a
// fresh query.
func List(archivePath string, fn func(Row) error) error {
	s, err := store.Open(archivePath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.ForEach(false, func(e *entry.Entry) error {
		var ratio float64
		if e.Type == entry.File && e.Size > 0 {
			ratio = float64(e.CompressedSize) / float64(e.Size) * 100
		}

		return fn(Row{
			Name:  e.Name,
			Type:  e.Type,
			Mode:  e.Mode,
			Mtime: e.Mtime,
			Size:  e.Size,
			Ratio: ratio,
		})
	})
}
