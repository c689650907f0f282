package compressed

import (
	"fmt"
	"math"
	"os"

	"github.com/clarityrt/trajlog/compress"
	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/internal/pool"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

// gatherStream copies one axis sample slot across every snapshot into a
// pooled scratch slice; the caller releases it with the returned function.
func gatherStream(a timeseries.AxisData, offset, numSnapshots int) ([]float64, func()) {
	values, done := pool.GetFloat64Slice(numSnapshots)
	for snap := 0; snap < numSnapshots; snap++ {
		values[snap] = float64(a.Data[snap*a.Stride+offset])
	}

	return values, done
}

type writeOptions struct {
	version     section.CompressedVersion
	compression format.CompressionType
}

// WriteOption configures a compressed-codec write.
type WriteOption func(*writeOptions)

// WithFormatVersion selects the compressed wire-format version (default
// CompressedV2, with a dynamic scale table).
func WithFormatVersion(v section.CompressedVersion) WriteOption {
	return func(o *writeOptions) { o.version = v }
}

// WithCompression wraps the body with the given algorithm before writing
// (default CompressionNone; CompressionGzip is the auto-detected wrapper).
func WithCompression(c format.CompressionType) WriteOption {
	return func(o *writeOptions) { o.compression = c }
}

// Write serializes f to path, creating or truncating it.
func Write(path string, f *File, opts ...WriteOption) error {
	if path == "" || f == nil {
		return errs.ErrInvalidArgument
	}

	data, err := Marshal(f, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Marshal encodes f to its compressed byte representation, applying the
// selected outer compression wrapper.
func Marshal(f *File, opts ...WriteOption) ([]byte, error) {
	if f == nil {
		return nil, errs.ErrInvalidArgument
	}

	o := writeOptions{version: section.CompressedV2, compression: format.CompressionNone}
	for _, opt := range opts {
		opt(&o)
	}

	if err := f.validateCounts(); err != nil {
		return nil, err
	}

	f.Header.FormatVersion = o.version

	// Header.Bytes opens with the VOSTLC signature.
	body, err := f.Header.Bytes()
	if err != nil {
		return nil, err
	}

	for _, sb := range f.SubBeams {
		body = append(body, sb.Bytes()...)
	}

	var scales []float32
	if o.version == section.CompressedV2 {
		scales = computeScales(f)
		body = appendScaleTable(body, scales)
	}

	body, err = encodePayload(body, f, scales, o.version)
	if err != nil {
		return nil, err
	}

	if o.compression == format.CompressionNone {
		return body, nil
	}

	codec, err := compress.CreateCodec(o.compression, "compressed trajectory log")
	if err != nil {
		return nil, err
	}

	return codec.Compress(body)
}

func (f *File) validateCounts() error {
	if len(f.SubBeams) != int(f.Header.NumberOfSubBeams) {
		return fmt.Errorf("%w: %d sub-beam records, header declares %d",
			errs.ErrInvalidOperation, len(f.SubBeams), f.Header.NumberOfSubBeams)
	}

	if len(f.Axes) != len(f.Header.AxesSampled) {
		return fmt.Errorf("%w: %d axis buffers, header declares %d axes",
			errs.ErrInvalidOperation, len(f.Axes), len(f.Header.AxesSampled))
	}

	for i, a := range f.Axes {
		if a.NumSnapshots() != int(f.Header.NumberOfSnapshots) {
			return fmt.Errorf("%w: axis %d has %d snapshots, header declares %d",
				errs.ErrInvalidOperation, i, a.NumSnapshots(), f.Header.NumberOfSnapshots)
		}
	}

	return nil
}

// computeScales chooses one scale per stream, in the same axis-major,
// offset-major order the payload is written.
func computeScales(f *File) []float32 {
	scales := make([]float32, 0, f.Header.StreamCount())

	for _, a := range f.Axes {
		fullRotation := a.Kind.IsFullRotation()
		class := format.ClassOf(a.Kind)
		numSnapshots := a.NumSnapshots()

		for offset := 0; offset < a.Stride; offset++ {
			values, done := gatherStream(a, offset, numSnapshots)
			scales = append(scales, SelectScale(values, class, fullRotation))
			done()
		}
	}

	return scales
}

func appendScaleTable(body []byte, scales []float32) []byte {
	engine := endian.GetLittleEndianEngine()

	body = engine.AppendUint32(body, uint32(len(scales)))
	for _, s := range scales {
		body = engine.AppendUint32(body, math.Float32bits(s))
	}

	return body
}

func encodePayload(body []byte, f *File, scales []float32, version section.CompressedVersion) ([]byte, error) {
	streamIdx := 0

	for _, a := range f.Axes {
		fullRotation := a.Kind.IsFullRotation()
		class := format.ClassOf(a.Kind)
		numSnapshots := a.NumSnapshots()

		for offset := 0; offset < a.Stride; offset++ {
			scale := float64(FixedScale(a.Kind))
			if version == section.CompressedV2 {
				scale = float64(scales[streamIdx])
			}

			values, done := gatherStream(a, offset, numSnapshots)

			var err error
			body, err = EncodeStream(body, values, scale, class, fullRotation)
			done()
			if err != nil {
				return nil, err
			}

			streamIdx++
		}
	}

	return body, nil
}
