// Package compress provides the optional outer-wrapper codecs for compressed
// trajectory logs: gzip (auto-detected on read by its standard
// 1F 8B magic), and three selectable alternates — Zstd, S2, and LZ4 — for
// callers who want a different compression/speed tradeoff on the quantized
// stream payload the codec/compressed package produces.
//
// # Architecture
//
// The package defines three small interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (format.CompressionNone): passthrough, used when the quantized
//     body is already small enough that a second compression pass isn't
//     worth the CPU.
//   - Gzip (format.CompressionGzip): the format's native wrapper,
//     auto-detected on read.
//   - Zstd (format.CompressionZstd): best ratio, used when storage cost
//     dominates (cold-archived logs).
//   - S2 (format.CompressionS2): fast, used when write throughput during
//     delivery-time logging matters more than ratio.
//   - LZ4 (format.CompressionLZ4): fastest decompression, used when logs are
//     read far more often than written (interactive review tooling).
//
// Choose via CreateCodec/GetCodec with a format.CompressionType; the
// compressed-codec writer selects the wrapper through its WithCompression
// option.
package compress
