package entry

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeFromMode(t *testing.T) {
	assert.Equal(t, File, TypeFromMode(0o100644))
	assert.Equal(t, Dir, TypeFromMode(0o040755))
	assert.Equal(t, Unsupported, TypeFromMode(0o120777), "symlinks are unsupported")
	assert.Equal(t, Unsupported, TypeFromMode(0o644), "bare permission bits have no type")
}

func TestPerm(t *testing.T) {
	assert.Equal(t, uint32(0o644), Perm(0o100644))
	assert.Equal(t, uint32(0o755), Perm(0o040755))
	assert.Equal(t, uint32(0o777), Perm(0o777))
}

func TestPosixMode(t *testing.T) {
	assert.Equal(t, uint32(0o100644), PosixMode(fs.FileMode(0o644)))
	assert.Equal(t, uint32(0o040755), PosixMode(fs.ModeDir|0o755))
	assert.Equal(t, uint32(0o120777), PosixMode(fs.ModeSymlink|0o777))
	assert.Equal(t, Unsupported, TypeFromMode(PosixMode(fs.ModeSocket|0o644)))
}

func TestPosixModeRoundTrip(t *testing.T) {
	assert.Equal(t, File, TypeFromMode(PosixMode(fs.FileMode(0o600))))
	assert.Equal(t, Dir, TypeFromMode(PosixMode(fs.ModeDir|0o700)))
}

func TestFileTypeString(t *testing.T) {
	assert.Equal(t, "File", File.String())
	assert.Equal(t, "Dir", Dir.String())
	assert.Equal(t, "Unsupported", Unsupported.String())
}
