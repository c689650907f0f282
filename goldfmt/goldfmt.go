// Package goldfmt serializes reconstructed fluence results for the
// gold-standard comparison harness: the accumulated grid, the options that
// produced it, and the rotated jaw outlines, in a small little-endian binary
// layout with strict reader/writer symmetry.
package goldfmt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/geometry"
)

// signature is the 16-byte (null-padded) magic opening a gold-standard file.
var signature = [16]byte{'V', 'O', 'S', 'T', 'L', 'F'}

const version = "1.0"

const (
	flagApproximate      = 1 << 0
	flagExcludeBeamHolds = 1 << 1
	flagFixedCollimator  = 1 << 2
)

// Marshal encodes f to the gold-standard byte layout.
func Marshal(f *fluence.FieldFluence) ([]byte, error) {
	if f == nil {
		return nil, errs.ErrInvalidArgument
	}

	engine := endian.GetLittleEndianEngine()

	buf := append([]byte{}, signature[:]...)

	var versionField [16]byte
	copy(versionField[:], version)
	buf = append(buf, versionField[:]...)

	o := f.Options
	buf = engine.AppendUint32(buf, uint32(int32(o.Cols)))
	buf = engine.AppendUint32(buf, uint32(int32(o.Rows)))
	buf = appendFloat64(buf, engine, o.Width)
	buf = appendFloat64(buf, engine, o.Height)
	buf = appendFloat64(buf, engine, o.Margin)
	buf = appendFloat64(buf, engine, o.MinDeltaMu)

	flags := byte(0)
	if o.UseApproximateFluence {
		flags |= flagApproximate
	}
	if o.ExcludeBeamHolds {
		flags |= flagExcludeBeamHolds
	}
	if o.FixedCollimatorAngle != nil {
		flags |= flagFixedCollimator
	}
	buf = append(buf, flags)

	if o.FixedCollimatorAngle != nil {
		buf = appendFloat64(buf, engine, *o.FixedCollimatorAngle)
	}

	g := f.Grid
	buf = appendFloat64(buf, engine, g.X)
	buf = appendFloat64(buf, engine, g.Y)
	buf = appendFloat64(buf, engine, g.Width)
	buf = appendFloat64(buf, engine, g.Height)
	buf = engine.AppendUint32(buf, uint32(int32(g.Cols)))
	buf = engine.AppendUint32(buf, uint32(int32(g.Rows)))
	for _, v := range g.Data {
		buf = appendFloat64(buf, engine, v)
	}

	buf = engine.AppendUint32(buf, uint32(int32(len(f.JawOutlines))))
	for _, outline := range f.JawOutlines {
		buf = engine.AppendUint32(buf, uint32(int32(len(outline.Points))))
		for _, p := range outline.Points {
			buf = appendFloat64(buf, engine, p.X)
			buf = appendFloat64(buf, engine, p.Y)
		}
	}

	return buf, nil
}

// Unmarshal decodes a gold-standard byte stream produced by Marshal.
func Unmarshal(data []byte) (*fluence.FieldFluence, error) {
	r := &reader{data: data, engine: endian.GetLittleEndianEngine()}

	sig, err := r.bytes(16)
	if err != nil {
		return nil, err
	}
	for i := range signature {
		if sig[i] != signature[i] {
			return nil, errs.ErrInvalidSignature
		}
	}

	versionField, err := r.bytes(16)
	if err != nil {
		return nil, err
	}
	if got := trimNul(versionField); got != version {
		return nil, fmt.Errorf("%w: gold-standard version %q", errs.ErrInvalidVersion, got)
	}

	o := fluence.DefaultOptions()
	if o.Cols, err = r.int32AsInt(); err != nil {
		return nil, err
	}
	if o.Rows, err = r.int32AsInt(); err != nil {
		return nil, err
	}
	if o.Width, err = r.float64(); err != nil {
		return nil, err
	}
	if o.Height, err = r.float64(); err != nil {
		return nil, err
	}
	if o.Margin, err = r.float64(); err != nil {
		return nil, err
	}
	if o.MinDeltaMu, err = r.float64(); err != nil {
		return nil, err
	}

	flagsRaw, err := r.bytes(1)
	if err != nil {
		return nil, err
	}
	flags := flagsRaw[0]

	o.UseApproximateFluence = flags&flagApproximate != 0
	o.ExcludeBeamHolds = flags&flagExcludeBeamHolds != 0
	if flags&flagFixedCollimator != 0 {
		angle, err := r.float64()
		if err != nil {
			return nil, err
		}

		o.FixedCollimatorAngle = &angle
	}

	var g fluence.GridF
	if g.X, err = r.float64(); err != nil {
		return nil, err
	}
	if g.Y, err = r.float64(); err != nil {
		return nil, err
	}
	if g.Width, err = r.float64(); err != nil {
		return nil, err
	}
	if g.Height, err = r.float64(); err != nil {
		return nil, err
	}
	if g.Cols, err = r.int32AsInt(); err != nil {
		return nil, err
	}
	if g.Rows, err = r.int32AsInt(); err != nil {
		return nil, err
	}

	if g.Cols < 0 || g.Rows < 0 || g.Cols*g.Rows > len(r.data) {
		return nil, fmt.Errorf("%w: gold-standard grid %dx%d", errs.ErrInvalidFormat, g.Cols, g.Rows)
	}

	g.Data = make([]float64, g.Cols*g.Rows)
	for i := range g.Data {
		if g.Data[i], err = r.float64(); err != nil {
			return nil, err
		}
	}

	outlineCount, err := r.int32AsInt()
	if err != nil {
		return nil, err
	}
	if outlineCount < 0 || outlineCount > len(r.data) {
		return nil, fmt.Errorf("%w: gold-standard outline count %d", errs.ErrInvalidFormat, outlineCount)
	}

	outlines := make([]geometry.Polygon, 0, outlineCount)
	for i := 0; i < outlineCount; i++ {
		pointCount, err := r.int32AsInt()
		if err != nil {
			return nil, err
		}
		if pointCount < 0 || pointCount > len(r.data) {
			return nil, fmt.Errorf("%w: gold-standard outline with %d points", errs.ErrInvalidFormat, pointCount)
		}

		pts := make([]geometry.Point, pointCount)
		for j := range pts {
			if pts[j].X, err = r.float64(); err != nil {
				return nil, err
			}
			if pts[j].Y, err = r.float64(); err != nil {
				return nil, err
			}
		}

		outlines = append(outlines, geometry.NewPolygon(pts...))
	}

	return &fluence.FieldFluence{Grid: g, Options: o, JawOutlines: outlines}, nil
}

// Write serializes f to path.
func Write(path string, f *fluence.FieldFluence) error {
	if path == "" {
		return errs.ErrInvalidArgument
	}

	data, err := Marshal(f)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Read parses the gold-standard file at path.
func Read(path string) (*fluence.FieldFluence, error) {
	if path == "" {
		return nil, errs.ErrInvalidArgument
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}

	return Unmarshal(data)
}

// ReadFrom parses a gold-standard stream.
func ReadFrom(r io.Reader) (*fluence.FieldFluence, error) {
	if r == nil {
		return nil, errs.ErrInvalidArgument
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Unmarshal(data)
}

func appendFloat64(dst []byte, engine endian.EndianEngine, v float64) []byte {
	return engine.AppendUint64(dst, math.Float64bits(v))
}

// reader is a bounds-checked cursor over the input.
type reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.off+n > len(r.data) {
		return nil, errs.ErrUnexpectedEOF
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *reader) int32AsInt() (int, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return int(int32(r.engine.Uint32(b))), nil
}

func (r *reader) float64() (float64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.engine.Uint64(b)), nil
}

func trimNul(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
