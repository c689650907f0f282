package native

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

// readOptions configures Read/ReadFrom.
type readOptions struct {
	headerOnly bool
}

// ReadOption configures a native-codec read.
type ReadOption func(*readOptions)

// WithHeaderOnly short-circuits the read before the sub-beam and axis
// payload, returning only the parsed Header.
func WithHeaderOnly() ReadOption {
	return func(o *readOptions) { o.headerOnly = true }
}

// Read opens path and parses it as a native trajectory log.
func Read(path string, opts ...ReadOption) (*File, error) {
	if path == "" {
		return nil, errs.ErrInvalidArgument
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}
	defer f.Close()

	return ReadFrom(f, opts...)
}

// ReadFrom parses a native trajectory log from r, reading only as many
// bytes as the declared counts require.
func ReadFrom(r io.Reader, opts ...ReadOption) (*File, error) {
	if r == nil {
		return nil, errs.ErrInvalidArgument
	}

	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	prefix := make([]byte, section.NativeFixedPrefixSize)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, wrapShortRead(err)
	}

	numAxes, err := section.PeekNumAxesSampled(prefix)
	if err != nil {
		return nil, err
	}

	headerSize := section.NativeHeaderSizeForAxes(int(numAxes))
	headerBuf := make([]byte, headerSize)
	copy(headerBuf, prefix)
	if _, err := io.ReadFull(r, headerBuf[len(prefix):]); err != nil {
		return nil, wrapShortRead(err)
	}

	header, err := section.ParseHeader(headerBuf)
	if err != nil {
		return nil, err
	}

	if o.headerOnly {
		return &File{Header: header}, nil
	}

	subBeams := make([]section.SubBeamRecord, header.NumberOfSubBeams)
	subBuf := make([]byte, section.SubBeamRecordSize)
	for i := range subBeams {
		if _, err := io.ReadFull(r, subBuf); err != nil {
			return nil, wrapShortRead(err)
		}

		rec, err := section.ParseSubBeamRecord(subBuf)
		if err != nil {
			return nil, err
		}

		subBeams[i] = rec
	}

	axes, err := readAxisPayload(r, header)
	if err != nil {
		return nil, err
	}

	return &File{Header: header, SubBeams: subBeams, Axes: axes}, nil
}

// readAxisPayload de-interleaves the on-disk snapshot-major/axis-major/
// sample-major float32 stream into one stride-major buffer per axis.
func readAxisPayload(r io.Reader, header section.Header) ([]timeseries.AxisData, error) {
	n := len(header.AxesSampled)
	numSnapshots := int(header.NumberOfSnapshots)

	buffers := make([][]float32, n)
	for i, stride := range header.SamplesPerAxis {
		buffers[i] = make([]float32, numSnapshots*int(stride))
	}

	rowSamples := 0
	for _, s := range header.SamplesPerAxis {
		rowSamples += int(s)
	}

	row := make([]byte, rowSamples*4)
	for snap := 0; snap < numSnapshots; snap++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, wrapShortRead(err)
		}

		off := 0
		for i, stride := range header.SamplesPerAxis {
			s := int(stride)
			decodeFloat32Row(row[off:off+s*4], buffers[i][snap*s:(snap+1)*s])
			off += s * 4
		}
	}

	axes := make([]timeseries.AxisData, n)
	for i, kind := range header.AxesSampled {
		a, err := timeseries.NewAxisData(kind, int(header.SamplesPerAxis[i]), numSnapshots, buffers[i])
		if err != nil {
			return nil, err
		}

		axes[i] = a
	}

	return axes, nil
}

func wrapShortRead(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return errs.ErrUnexpectedEOF
	}

	return err
}
