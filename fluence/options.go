package fluence

import (
	"fmt"
	"runtime"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/internal/options"
	"github.com/clarityrt/trajlog/logx"
)

// FluenceOptions configures the fluence reconstruction engine.
// The zero value is not usable; construct with DefaultOptions or let
// Reconstruct apply its Option list over the defaults.
type FluenceOptions struct {
	// Cols and Rows are the output grid dimensions in pixels.
	Cols int
	Rows int

	// Width and Height are the grid extents in mm. Negative values (the
	// default) select automatic extent calculation from the rotated jaw
	// bounds plus Margin; positive values are centered at the origin.
	Width  float64
	Height float64

	// Margin expands the automatic extent on every side, in mm.
	Margin float64

	// MinDeltaMu is the per-snapshot MU threshold: only snapshots delivering
	// more than it contribute to the grid; snapshots at or below it are
	// skipped.
	MinDeltaMu float64

	// UseApproximateFluence selects the scanline rasterizer instead of
	// exact polygon-pixel clipping.
	UseApproximateFluence bool

	// FixedCollimatorAngle, when non-nil, overrides every snapshot's
	// collimator angle, in degrees.
	FixedCollimatorAngle *float64

	// MaxParallelism bounds the snapshot-partition worker count.
	MaxParallelism int

	// ExcludeBeamHolds skips snapshots delivered during a beam hold.
	ExcludeBeamHolds bool

	// Logger receives skip diagnostics. Defaults to logx.Nop.
	Logger logx.Logger
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() FluenceOptions {
	return FluenceOptions{
		Cols:           100,
		Rows:           100,
		Width:          -1,
		Height:         -1,
		Margin:         10,
		MinDeltaMu:     1e-4,
		MaxParallelism: runtime.NumCPU(),
		Logger:         logx.Nop,
	}
}

func (o FluenceOptions) validate() error {
	if o.Cols <= 0 || o.Rows <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d", errs.ErrOutOfRange, o.Cols, o.Rows)
	}

	if o.MaxParallelism <= 0 {
		return fmt.Errorf("%w: max parallelism %d", errs.ErrOutOfRange, o.MaxParallelism)
	}

	return nil
}

// Option configures FluenceOptions.
type Option = options.Option[*FluenceOptions]

// WithGridSize sets the output pixel dimensions.
func WithGridSize(cols, rows int) Option {
	return options.NoError(func(o *FluenceOptions) {
		o.Cols = cols
		o.Rows = rows
	})
}

// WithExtent fixes the grid's physical extent in mm, centered at the origin,
// overriding automatic extent calculation.
func WithExtent(width, height float64) Option {
	return options.NoError(func(o *FluenceOptions) {
		o.Width = width
		o.Height = height
	})
}

// WithMargin sets the automatic-extent margin in mm.
func WithMargin(margin float64) Option {
	return options.NoError(func(o *FluenceOptions) { o.Margin = margin })
}

// WithMinDeltaMu sets the minimum per-snapshot MU weight.
func WithMinDeltaMu(mu float64) Option {
	return options.NoError(func(o *FluenceOptions) { o.MinDeltaMu = mu })
}

// WithApproximateFluence selects the scanline rasterizer.
func WithApproximateFluence() Option {
	return options.NoError(func(o *FluenceOptions) { o.UseApproximateFluence = true })
}

// WithFixedCollimatorAngle pins the collimator angle for every snapshot.
func WithFixedCollimatorAngle(deg float64) Option {
	return options.NoError(func(o *FluenceOptions) {
		angle := deg
		o.FixedCollimatorAngle = &angle
	})
}

// WithMaxParallelism bounds the worker count.
func WithMaxParallelism(n int) Option {
	return options.NoError(func(o *FluenceOptions) { o.MaxParallelism = n })
}

// WithExcludeBeamHolds skips snapshots delivered during a beam hold.
func WithExcludeBeamHolds() Option {
	return options.NoError(func(o *FluenceOptions) { o.ExcludeBeamHolds = true })
}

// WithLogger installs a diagnostics logger.
func WithLogger(l logx.Logger) Option {
	return options.NoError(func(o *FluenceOptions) { o.Logger = l })
}
