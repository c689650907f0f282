package timeseries

import (
	"time"

	"github.com/clarityrt/trajlog/format"
)

// Series is a lazy, index-addressed sequence of scalar values: either an
// axis's raw actual-value column, or a derivative produced by GetDelta.
// Chaining GetDelta twice composes the second derivative (acceleration from
// positions) without ever materializing an intermediate slice.
type Series struct {
	Axis               format.AxisKind
	Scale              format.Scale
	SamplingIntervalMs int32
	Len                int
	At                 func(i int) float64
}

// Value returns the series value at index i.
func (s Series) Value(i int) float64 { return s.At(i) }

// GetDelta returns a new series whose value at index i is
// (x[i]-x[i-1]) * (dt/samplingInterval), wrapping via shortest-arc for
// rotational axes. Index 0 is always 0.
func (s Series) GetDelta(dt time.Duration) Series {
	factor := float64(dt.Milliseconds()) / float64(s.SamplingIntervalMs)
	prev := s.At
	axis := s.Axis

	return Series{
		Axis:               axis,
		Scale:              s.Scale,
		SamplingIntervalMs: s.SamplingIntervalMs,
		Len:                s.Len,
		At: func(i int) float64 {
			if i <= 0 {
				return 0
			}

			d := prev(i) - prev(i-1)
			if axis.IsFullRotation() {
				d = normalizeTo180(d)
			}

			return d * factor
		},
	}
}

// WithScale returns a series that converts every value through Convert
// before returning it, preserving unit semantics across a delta
// composition.
func (s Series) WithScale(target format.Scale) Series {
	if target == s.Scale {
		return s
	}

	prev := s.At
	axis, from := s.Axis, s.Scale

	return Series{
		Axis:               axis,
		Scale:              target,
		SamplingIntervalMs: s.SamplingIntervalMs,
		Len:                s.Len,
		At:                 func(i int) float64 { return Convert(from, target, axis, prev(i)) },
	}
}

// DoseRatePerMinute returns the MU/min dose-rate series derived from an MU
// actual-value series: the per-sample delta scaled from the sampling
// interval to a one-minute window.
func DoseRatePerMinute(mu Series) Series {
	dt := time.Duration(mu.SamplingIntervalMs) * time.Millisecond
	delta := mu.GetDelta(dt) // factor 1: raw per-sample MU delta
	msPerMin := 60000.0 / float64(mu.SamplingIntervalMs)

	prev := delta.At

	return Series{
		Axis:               mu.Axis,
		Scale:              mu.Scale,
		SamplingIntervalMs: mu.SamplingIntervalMs,
		Len:                mu.Len,
		At:                 func(i int) float64 { return prev(i) * msPerMin },
	}
}
