package compressed

import (
	"math"

	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

var (
	smallEscape int8  = -128
	largeEscape int16 = -32768
)

func baseWidths(class format.StreamClass) (base, delta int) {
	if class == format.StreamLarge {
		return 4, 2
	}

	return 2, 1
}

func baseRange(class format.StreamClass) (lo, hi int64) {
	if class == format.StreamLarge {
		return math.MinInt32, math.MaxInt32
	}

	return math.MinInt16, math.MaxInt16
}

func fitsDelta(delta int64, class format.StreamClass) bool {
	if class == format.StreamLarge {
		return delta >= -32767 && delta <= 32767
	}

	return delta >= -127 && delta <= 127
}

func quantize(value, scale float64, class format.StreamClass) (int64, error) {
	q := int64(math.Round(value * scale))

	lo, hi := baseRange(class)
	if q < lo || q > hi {
		return 0, errs.ErrQuantizationOverflow
	}

	return q, nil
}

// normalizeDelta wraps delta (in quantized units at the stream's scale) to
// the shortest arc, for full-rotation axes.
func normalizeDelta(delta int64, scale float64) int64 {
	span := int64(math.Round(360 * scale))
	half := int64(math.Round(180 * scale))
	if span <= 0 {
		return delta
	}

	for delta > half {
		delta -= span
	}
	for delta < -half {
		delta += span
	}

	return delta
}

func appendBase(dst []byte, engine endian.EndianEngine, q int64, class format.StreamClass) []byte {
	if class == format.StreamLarge {
		return engine.AppendUint32(dst, uint32(int32(q)))
	}

	return engine.AppendUint16(dst, uint16(int16(q)))
}

func appendDelta(dst []byte, engine endian.EndianEngine, delta int64, class format.StreamClass) []byte {
	if class == format.StreamLarge {
		return engine.AppendUint16(dst, uint16(int16(delta)))
	}

	return append(dst, byte(int8(delta)))
}

func appendEscape(dst []byte, engine endian.EndianEngine, class format.StreamClass) []byte {
	if class == format.StreamLarge {
		return engine.AppendUint16(dst, uint16(int16(largeEscape)))
	}

	return append(dst, byte(int8(smallEscape)))
}

func readBase(src []byte, engine endian.EndianEngine, class format.StreamClass) int64 {
	if class == format.StreamLarge {
		return int64(int32(engine.Uint32(src)))
	}

	return int64(int16(engine.Uint16(src)))
}

// readDelta reads one delta-width value, reporting whether it was the
// escape sentinel.
func readDelta(src []byte, engine endian.EndianEngine, class format.StreamClass) (int64, bool) {
	if class == format.StreamLarge {
		d := int16(engine.Uint16(src))
		if d == largeEscape {
			return 0, true
		}

		return int64(d), false
	}

	d := int8(src[0])
	if d == smallEscape {
		return 0, true
	}

	return int64(d), false
}

// EncodeStream quantizes and delta-encodes one stream of samples at the
// given scale, appending the result to dst.
func EncodeStream(dst []byte, values []float64, scale float64, class format.StreamClass, fullRotation bool) ([]byte, error) {
	if len(values) == 0 {
		return dst, nil
	}

	engine := endian.GetLittleEndianEngine()

	q0, err := quantize(values[0], scale, class)
	if err != nil {
		return nil, err
	}
	dst = appendBase(dst, engine, q0, class)

	prev := q0
	for i := 1; i < len(values); i++ {
		qi, err := quantize(values[i], scale, class)
		if err != nil {
			return nil, err
		}

		delta := qi - prev
		if fullRotation {
			delta = normalizeDelta(delta, scale)
		}

		if fitsDelta(delta, class) {
			dst = appendDelta(dst, engine, delta, class)
		} else {
			dst = appendEscape(dst, engine, class)
			dst = appendBase(dst, engine, qi, class)
		}

		prev = qi
	}

	return dst, nil
}

// DecodeStream reads n quantized samples from src, dequantizing by scale.
// It returns the decoded values and the number of bytes consumed.
func DecodeStream(src []byte, n int, scale float64, class format.StreamClass) ([]float64, int, error) {
	if n == 0 {
		return nil, 0, nil
	}

	engine := endian.GetLittleEndianEngine()
	baseWidth, deltaWidth := baseWidths(class)

	if len(src) < baseWidth {
		return nil, 0, errs.ErrUnexpectedEOF
	}

	values := make([]float64, n)
	q0 := readBase(src, engine, class)
	values[0] = float64(q0) / scale
	off := baseWidth
	prev := q0

	for i := 1; i < n; i++ {
		if len(src) < off+deltaWidth {
			return nil, 0, errs.ErrUnexpectedEOF
		}

		delta, escaped := readDelta(src[off:], engine, class)
		off += deltaWidth

		var qi int64
		if escaped {
			if len(src) < off+baseWidth {
				return nil, 0, errs.ErrUnexpectedEOF
			}

			qi = readBase(src[off:], engine, class)
			off += baseWidth
		} else {
			qi = prev + delta
		}

		values[i] = float64(qi) / scale
		prev = qi
	}

	return values, off, nil
}
