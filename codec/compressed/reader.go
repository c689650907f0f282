package compressed

import (
	"errors"
	"fmt"
	"io"
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

// MaxUncompressedSize is the largest uncompressed body Read/ReadFrom will
// accept: anything larger is rejected outright rather than parsed.
const MaxUncompressedSize = 100 << 20

// Read opens path and parses it as a compressed trajectory log, auto-
// detecting a gzip wrapper by its leading magic bytes.
func Read(path string) (*File, error) {
	if path == "" {
		return nil, errs.ErrInvalidArgument
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}

	return Parse(raw)
}

// ReadFrom stages all of r into a pooled buffer, then parses it
// synchronously as a compressed trajectory log. The parsed File copies
// everything it keeps, so the staging buffer is recycled on return.
func ReadFrom(r io.Reader) (*File, error) {
	if r == nil {
		return nil, errs.ErrInvalidArgument
	}

	buf := pool.GetLogBuffer()
	defer pool.PutLogBuffer(buf)

	if _, err := io.Copy(buf, io.LimitReader(r, MaxUncompressedSize+1)); err != nil {
		return nil, err
	}

	if buf.Len() > MaxUncompressedSize {
		return nil, fmt.Errorf("%w: compressed log exceeds %d bytes", errs.ErrTooLarge, MaxUncompressedSize)
	}

	return Parse(buf.Bytes())
}

// Parse decodes a compressed trajectory log from an in-memory byte slice,
// unwrapping gzip if present.
func Parse(raw []byte) (*File, error) {
	if compress.IsGzip(raw) {
		gz := compress.NewGzipCompressor()
		unwrapped, err := gz.Decompress(raw)
		if err != nil {
			return nil, err
		}

		raw = unwrapped
	}

	if len(raw) > MaxUncompressedSize {
		return nil, fmt.Errorf("%w: compressed log body %d bytes exceeds %d", errs.ErrTooLarge, len(raw), MaxUncompressedSize)
	}

	if len(raw) < len(section.CompressedSignature) {
		return nil, errs.ErrUnexpectedEOF
	}

	sig := raw[:len(section.CompressedSignature)]
	for i := 0; i < len(section.CompressedSignature); i++ {
		if sig[i] != section.CompressedSignature[i] {
			return nil, errs.ErrInvalidSignature
		}
	}

	body := raw[len(section.CompressedSignature):]

	header, consumed, err := section.ParseCompressedHeader(body)
	if err != nil {
		return nil, err
	}
	body = body[consumed:]

	subBeams := make([]section.SubBeamRecord, header.NumberOfSubBeams)
	for i := range subBeams {
		if len(body) < section.SubBeamRecordSize {
			return nil, errs.ErrUnexpectedEOF
		}

		rec, err := section.ParseSubBeamRecord(body[:section.SubBeamRecordSize])
		if err != nil {
			return nil, err
		}

		subBeams[i] = rec
		body = body[section.SubBeamRecordSize:]
	}

	// The scale table (format version 2.0 only) sits between the sub-beam
	// block and the stream payload.
	var scales []float32
	if header.FormatVersion == section.CompressedV2 {
		scales, body, err = readScaleTable(body, header.StreamCount())
		if err != nil {
			return nil, err
		}
	}

	axes, err := decodePayload(body, header, scales)
	if err != nil {
		return nil, err
	}

	return &File{Header: header, SubBeams: subBeams, Axes: axes}, nil
}

func readScaleTable(body []byte, k int) ([]float32, []byte, error) {
	if len(body) < 4 {
		return nil, nil, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()
	declaredK := int(int32(engine.Uint32(body)))
	body = body[4:]

	if declaredK != k {
		return nil, nil, fmt.Errorf("%w: scale table declares %d entries, header implies %d", errs.ErrInvalidFormat, declaredK, k)
	}

	if len(body) < k*4 {
		return nil, nil, errs.ErrUnexpectedEOF
	}

	scales := make([]float32, k)
	for i := range scales {
		scales[i] = math.Float32frombits(engine.Uint32(body))
		body = body[4:]
	}

	return scales, body, nil
}

// decodePayload demultiplexes the stream payload in the same axis-major,
// offset-major order the writer emits.
func decodePayload(body []byte, header section.CompressedHeader, scales []float32) ([]timeseries.AxisData, error) {
	numSnapshots := int(header.NumberOfSnapshots)
	axes := make([]timeseries.AxisData, len(header.AxesSampled))

	streamIdx := 0
	for ai, kind := range header.AxesSampled {
		stride := int(header.SamplesPerAxis[ai])
		class := format.ClassOf(kind)

		data := make([]float32, numSnapshots*stride)
		for offset := 0; offset < stride; offset++ {
			scale := streamScale(header, scales, kind, streamIdx)

			values, n, err := DecodeStream(body, numSnapshots, float64(scale), class)
			if err != nil {
				return nil, err
			}
			body = body[n:]

			for snap := 0; snap < numSnapshots; snap++ {
				data[snap*stride+offset] = float32(values[snap])
			}

			streamIdx++
		}

		a, err := timeseries.NewAxisData(kind, stride, numSnapshots, data)
		if err != nil {
			return nil, err
		}

		axes[ai] = a
	}

	return axes, nil
}

func streamScale(header section.CompressedHeader, scales []float32, kind format.AxisKind, streamIdx int) float32 {
	if header.FormatVersion == section.CompressedV2 {
		return scales[streamIdx]
	}

	return FixedScale(kind)
}
