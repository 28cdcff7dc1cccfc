package entry

import "io/fs"

// st_mode bit masks, via inode(7)
const (
	// TypeMask selects the file type bit field of a mode
	TypeMask uint32 = 0o170000
	// TypeFile marks a regular file
	TypeFile uint32 = 0o100000
	// TypeDir marks a directory
	TypeDir uint32 = 0o040000
	// TypeSymlink marks a symbolic link
	TypeSymlink uint32 = 0o120000
)

// FileType classifies an archived object
type FileType int

const (
	// File is a regular file
	File FileType = iota
	// Dir is a directory
	Dir
	// Unsupported covers every other file type; such entries are stored
	// without content and never extracted
	Unsupported
)

func (t FileType) String() string {
	switch t {
	case File:
		return "File"
	case Dir:
		return "Dir"
	default:
		return "Unsupported"
	}
}

// Entry contains metadata and optional content for one archived object
type Entry struct {
	// Relative path of the object; unique within an archive
	Name string
	// Full st_mode bits when building an entry for insertion,
	// permission bits only once loaded from an archive
	Mode uint32
	// Derived from the type bits of the stored mode
	Type FileType
	// Last modification time, seconds since epoch
	Mtime int64
	// Original size in bytes; 0 for directories
	Size int64
	// Payload length as stored, which is less than Size when the
	// content compressed well
	CompressedSize int64
	// Uncompressed content; nil for directories and for metadata-only reads
	Data []byte
}

// TypeFromMode classifies a raw mode into a FileType
func TypeFromMode(mode uint32) FileType {
	switch mode & TypeMask {
	case TypeFile:
		return File
	case TypeDir:
		return Dir
	default:
		return Unsupported
	}
}

// Perm strips the type bits from a raw mode
func Perm(mode uint32) uint32 {
	return mode & 0o777
}

// PosixMode converts a Go file mode into st_mode-style bits so archives
// stay readable by other sqlar tools
func PosixMode(m fs.FileMode) uint32 {
	perm := uint32(m.Perm())
	switch {
	case m.IsRegular():
		return TypeFile | perm
	case m.IsDir():
		return TypeDir | perm
	case m&fs.ModeSymlink != 0:
		return TypeSymlink | perm
	default:
		return perm
	}
}
