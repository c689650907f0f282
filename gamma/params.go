package gamma

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/internal/options"
)

// Parameters2D configures a 2-D gamma-index comparison.
type Parameters2D struct {
	// DtaTolMm is the distance-to-agreement tolerance in mm. Must be at
	// least 0.1.
	DtaTolMm float64

	// DoseTolPercent is the dose-difference tolerance as a percentage of
	// the normalization dose.
	DoseTolPercent float64

	// Global selects global normalization (the compared grid's maximum);
	// false normalizes locally by the reference dose at each offset.
	Global bool

	// ThresholdPercent excludes compared pixels below this percentage of
	// the compared grid's maximum from evaluation.
	ThresholdPercent float64

	// SamplingRate subdivides the DTA tolerance to pick the reference
	// supersampling resolution. Clamped to [1, 10].
	SamplingRate int
}

// DefaultParameters returns the standard comparison setup for the given
// tolerances: global normalization, a 10% low-dose threshold, and a
// sampling rate of 5.
func DefaultParameters(dtaTolMm, doseTolPercent float64) Parameters2D {
	return Parameters2D{
		DtaTolMm:         dtaTolMm,
		DoseTolPercent:   doseTolPercent,
		Global:           true,
		ThresholdPercent: 10,
		SamplingRate:     5,
	}
}

// normalize validates the tolerances and clamps the sampling rate.
func (p Parameters2D) normalize() (Parameters2D, error) {
	if p.DtaTolMm < 0.1 {
		return p, fmt.Errorf("%w: DTA tolerance %.3f mm below 0.1", errs.ErrOutOfRange, p.DtaTolMm)
	}

	if p.DoseTolPercent <= 0 {
		return p, fmt.Errorf("%w: dose tolerance %.3f%%", errs.ErrOutOfRange, p.DoseTolPercent)
	}

	if p.SamplingRate < 1 {
		p.SamplingRate = 1
	}
	if p.SamplingRate > 10 {
		p.SamplingRate = 10
	}

	return p, nil
}

// Option configures Parameters2D on top of DefaultParameters.
type Option = options.Option[*Parameters2D]

// WithLocalNormalization normalizes dose differences by the reference dose
// at each search offset instead of the compared grid's maximum.
func WithLocalNormalization() Option {
	return options.NoError(func(p *Parameters2D) { p.Global = false })
}

// WithThreshold sets the low-dose exclusion threshold, as a percentage of
// the compared grid's maximum.
func WithThreshold(percent float64) Option {
	return options.NoError(func(p *Parameters2D) { p.ThresholdPercent = percent })
}

// WithSamplingRate sets the DTA subdivision used for reference resampling.
func WithSamplingRate(rate int) Option {
	return options.NoError(func(p *Parameters2D) { p.SamplingRate = rate })
}
