package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// gzipMagic is the standard gzip two-byte magic, used by the compressed-codec
// reader to auto-detect a gzip-wrapped body without consulting any header
// field.
var gzipMagic = [2]byte{0x1F, 0x8B}

// IsGzip reports whether data begins with the gzip magic.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == gzipMagic[0] && data[1] == gzipMagic[1]
}

// GzipCompressor wraps the compressed codec's quantized body in a standard
// gzip stream, the format's native wrapper.
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip compressor at the default level.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress gzips data.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress gunzips data.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}

	return out, nil
}
