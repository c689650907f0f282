package compress

import (
	"fmt"

	"github.com/clarityrt/trajlog/format"
)

// Compressor compresses a compressed-trajectory-log body before it is
// written to disk.
//
// The input is the codec's fully quantized, delta-encoded stream payload;
// it is already compact, so the wrapper's job is squeezing the residual
// redundancy (repeated escape patterns, long zero runs on idle axes).
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The
	// input slice is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the read-side mirror of Compressor. Implementations must
// validate the input framing and fail on corrupt or foreign data rather
// than return garbage.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	// The input slice is never modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All built-in codecs are stateless value
// types, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one wrapper pass, for callers that want to
// verify the wrapper actually paid for itself on their logs.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType

	// OriginalSize is the size of the input data before compression.
	OriginalSize int64

	// CompressedSize is the size of the data after compression.
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size. Values below
// 1.0 indicate the wrapper shrank the body; 0.0 for an empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure runs codec over data and reports the resulting stats alongside
// the compressed bytes.
func Measure(codec Codec, algorithm format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return compressed, CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}, nil
}

// CreateCodec returns the Codec for compressionType. The target string
// names the caller in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionGzip:
		return NewGzipCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
