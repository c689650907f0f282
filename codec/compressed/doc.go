// Package compressed implements the VOSTLC compressed trajectory-log
// codec: an optional gzip wrapper, a header mirroring the native
// format's metadata without its fixed padding, the sub-beam records, an
// optional per-stream scale table (format version 2.0), and a quantized
// delta-encoded payload.
//
// A stream is one column of an axis — one sample index within its
// per-snapshot stride, e.g. a single MLC leaf's actual position across every
// snapshot. Each stream is quantized and delta-encoded independently, with
// its own scale.
package compressed
