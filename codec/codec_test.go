package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.New(rand.NewSource(42)).Read(buf)
	require.NoError(t, err)
	return buf
}

func TestRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":          {},
		"short":          []byte("hello"),
		"compressible":   make([]byte, 1024),
		"incompressible": randomBytes(t, 4096),
	}

	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			stored, err := Compress(blob)
			require.NoError(t, err)

			got, err := Decompress(stored, int64(len(blob)))
			require.NoError(t, err)
			assert.Equal(t, blob, got)
		})
	}
}

func TestCompressFallback(t *testing.T) {
	// Zeros deflate well, so the compressed form is kept
	zeros := make([]byte, 1024)
	stored, err := Compress(zeros)
	require.NoError(t, err)
	assert.Less(t, len(stored), len(zeros))

	// Too short to shrink: the input comes back as-is and the equal
	// length signals that no compression happened
	short := []byte("hello")
	stored, err = Compress(short)
	require.NoError(t, err)
	assert.Equal(t, short, stored)

	// Random data does not deflate
	noise := randomBytes(t, 4096)
	stored, err = Compress(noise)
	require.NoError(t, err)
	assert.Equal(t, len(noise), len(stored))
}

func TestDecompressPassthrough(t *testing.T) {
	// Matching length means the blob was stored verbatim, even when the
	// bytes are not a zlib stream
	blob := []byte{0x01, 0x02, 0x03}
	got, err := Decompress(blob, 3)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	// Non-positive sizes always pass through
	got, err = Decompress(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	got, err = Decompress(blob, -1)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestDecompressMalformed(t *testing.T) {
	// Length mismatch forces an inflate, which must surface the error
	_, err := Decompress([]byte{0x01, 0x02, 0x03, 0x04}, 99)
	assert.Error(t, err)
}
