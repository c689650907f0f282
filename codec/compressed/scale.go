package compressed

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/clarityrt/trajlog/format"
)

const (
	scaleMinBound = 10.0
	scaleMaxBound = 100_000.0
	scaleDefault  = 1000.0
)

func deltaRange(class format.StreamClass) float64 {
	if class == format.StreamLarge {
		return 32767
	}

	return 127
}

func baseMaxAbs(class format.StreamClass) float64 {
	_, hi := baseRange(class)

	return float64(hi)
}

func clampScale(s float64) float64 {
	switch {
	case s <= 0 || math.IsNaN(s) || math.IsInf(s, 0):
		return scaleDefault
	case s < scaleMinBound:
		return scaleMinBound
	case s > scaleMaxBound:
		return scaleMaxBound
	default:
		return s
	}
}

// rawDeltas returns consecutive differences of the unquantized values,
// angular-normalized to the shortest arc for full-rotation axes, in the
// stream's native units.
func rawDeltas(values []float64, fullRotation bool) []float64 {
	if len(values) < 2 {
		return nil
	}

	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if fullRotation {
			for d > 180 {
				d -= 360
			}
			for d < -180 {
				d += 360
			}
		}

		out = append(out, d)
	}

	return out
}

// SelectScale computes the per-stream dynamic quantization scale used by
// format version 2.0: large enough to preserve precision, small
// enough that every quantized absolute value fits the base width and every
// delta within the outlier threshold (|mean| + 5 std) fits the delta width.
// Larger deltas are left to the escape code.
func SelectScale(values []float64, class format.StreamClass, fullRotation bool) float32 {
	if len(values) == 0 {
		return scaleDefault
	}

	maxAbs := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	var scaleMax float64
	if maxAbs > 0 {
		scaleMax = 0.95 * baseMaxAbs(class) / maxAbs
	}

	deltas := rawDeltas(values, fullRotation)
	if len(deltas) == 0 || scaleMax == 0 {
		return float32(clampScale(scaleMax))
	}

	mean, std := stat.MeanStdDev(deltas, nil)
	threshold := math.Abs(mean) + 5*std

	maxNormal := 0.0
	for _, d := range deltas {
		if a := math.Abs(d); a <= threshold && a > maxNormal {
			maxNormal = a
		}
	}

	if maxNormal == 0 {
		return float32(clampScale(scaleMax))
	}

	scaleDelta := 0.9 * deltaRange(class) / maxNormal

	return float32(clampScale(math.Min(scaleMax, scaleDelta)))
}

// FixedScale returns the legacy scale used by format version 1.0 logs,
// which carry no scale table: two fractional digits of precision for every
// stream, regardless of axis kind.
func FixedScale(kind format.AxisKind) float32 {
	return 100.0
}
