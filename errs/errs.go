// Package errs defines the sentinel errors surfaced by the trajlog core.
//
// Callers should compare with errors.Is against these sentinels; packages
// that need to attach context wrap them with fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrInvalidArgument is returned for a nil path, nil stream, or other
	// caller-supplied argument that is structurally invalid.
	ErrInvalidArgument = errors.New("trajlog: invalid argument")

	// ErrNotFound is returned when a referenced file does not exist.
	ErrNotFound = errors.New("trajlog: not found")

	// ErrInvalidSignature is returned when a file's magic signature does not
	// match the expected codec signature.
	ErrInvalidSignature = errors.New("trajlog: invalid signature")

	// ErrInvalidVersion is returned when a version string does not parse as
	// a number, or is a number the codec does not recognize.
	ErrInvalidVersion = errors.New("trajlog: invalid version")

	// ErrInvalidHeader is returned when a header field is outside its
	// validated range (axis count, snapshot count, sub-beam count, ...).
	ErrInvalidHeader = errors.New("trajlog: invalid header")

	// ErrInvalidFormat is a catch-all for structurally invalid payloads that
	// are not narrowly a signature/version/header problem (e.g. a compressed
	// scale table whose entry count disagrees with the header).
	ErrInvalidFormat = errors.New("trajlog: invalid format")

	// ErrUnexpectedEOF is returned when a field is truncated mid-read.
	ErrUnexpectedEOF = errors.New("trajlog: unexpected end of file")

	// ErrQuantizationOverflow is returned when a value, once scaled, does not
	// fit the stream's base width during compressed-codec writing.
	ErrQuantizationOverflow = errors.New("trajlog: quantization overflow")

	// ErrInvalidOperation is returned for operations that are well-formed but
	// not permitted in context: writing a log whose header counts disagree
	// with its arrays, requesting a ScalarRecord for the MLC axis, adding two
	// grids of mismatched dimensions, and similar.
	ErrInvalidOperation = errors.New("trajlog: invalid operation")

	// ErrOutOfRange is returned for out-of-domain numeric parameters: a gamma
	// DTA tolerance below 0.1mm, matrix indexing past [2,2], a histogram
	// request with zero bins or empty input.
	ErrOutOfRange = errors.New("trajlog: out of range")

	// ErrTooLarge is returned when a compressed log's uncompressed body
	// exceeds the 100 MiB reader ceiling.
	ErrTooLarge = errors.New("trajlog: payload too large")
)
