package native

import (
	"fmt"
	"io"
	"os"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/internal/pool"
)

// Write serializes f to path, creating or truncating it.
func Write(path string, f *File) error {
	if path == "" || f == nil {
		return errs.ErrInvalidArgument
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return WriteTo(out, f)
}

// WriteTo serializes f's native byte layout to w, round-tripping bit-exact
// for every validated input.
func WriteTo(w io.Writer, f *File) error {
	if w == nil || f == nil {
		return errs.ErrInvalidArgument
	}

	if err := f.validateCounts(); err != nil {
		return err
	}

	headerBytes, err := f.Header.Bytes()
	if err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}

	for _, sb := range f.SubBeams {
		if _, err := w.Write(sb.Bytes()); err != nil {
			return err
		}
	}

	return writeAxisPayload(w, f)
}

// validateCounts enforces the invariant that a log's header counts must
// agree with its arrays before it can be written.
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

// writeAxisPayload re-interleaves each axis's stride-major buffer back into
// the on-disk snapshot-major/axis-major/sample-major float32 stream. The
// per-snapshot row buffer comes from the shared stream pool so repeated
// writes do not allocate.
func writeAxisPayload(w io.Writer, f *File) error {
	numSnapshots := int(f.Header.NumberOfSnapshots)

	rowSamples := 0
	for _, a := range f.Axes {
		rowSamples += a.Stride
	}

	row := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(row)
	row.Grow(rowSamples * 4)

	for snap := 0; snap < numSnapshots; snap++ {
		row.Reset()
		for _, a := range f.Axes {
			row.B = encodeFloat32Row(row.B, a.Data[snap*a.Stride:(snap+1)*a.Stride])
		}

		if _, err := w.Write(row.B); err != nil {
			return err
		}
	}

	return nil
}
