// Package codec implements the sqlar content transform: zlib-format
// compression with a size fallback.
//
// sqlar uses the "zlib format" for compressed content, a two-byte
// identification header plus a four-byte checksum trailer. This differs
// from ZIP, which uses the raw deflate format. A blob is only stored
// compressed when that actually made it smaller, so a stored length equal
// to the original size means the content was kept as-is.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress returns the zlib-compressed form of blob when that is strictly
// smaller than blob, otherwise blob itself.
func Compress(blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := zlib.NewWriter(&buf)
	if _, err := enc.Write(blob); err != nil {
		enc.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	if buf.Len() < len(blob) {
		return buf.Bytes(), nil
	}
	return blob, nil
}

// Decompress reverses Compress. size is the original length: when it is
// zero or negative, or equals the stored length, the content was never
// compressed and is returned unchanged. Malformed compressed input yields
// an error.
func Decompress(stored []byte, size int64) ([]byte, error) {
	if size <= 0 || int64(len(stored)) == size {
		return stored, nil
	}

	dec, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer dec.Close()

	blob, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return blob, nil
}
