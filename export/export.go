// Package export writes a trajectory log's time series as delimited text:
// one row per snapshot, a leading time column, and one column per axis
// sample, with values converted to a requested target scale.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/clarityrt/trajlog"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/internal/options"
	"github.com/clarityrt/trajlog/timeseries"
)

// exportOptions configures Write.
type exportOptions struct {
	delimiter   rune
	targetScale *format.Scale
	axes        []format.AxisKind
}

// Option configures a text export.
type Option = options.Option[*exportOptions]

// WithTab switches the delimiter from comma to tab (TSV output).
func WithTab() Option {
	return options.NoError(func(o *exportOptions) { o.delimiter = '\t' })
}

// WithTargetScale converts every scalar value to the given scale before
// writing; the default writes values in the log's own scale.
func WithTargetScale(s format.Scale) Option {
	return options.NoError(func(o *exportOptions) { o.targetScale = &s })
}

// WithAxes restricts the export to the given axes, in the given order.
// Requesting an axis the log never sampled fails the export; only the
// default all-axes selection degrades gracefully.
func WithAxes(axes ...format.AxisKind) Option {
	return options.NoError(func(o *exportOptions) { o.axes = axes })
}

// Write renders log as delimited text to w.
func Write(w io.Writer, log *trajlog.TrajectoryLog, opts ...Option) error {
	if w == nil || log == nil {
		return errs.ErrInvalidArgument
	}

	o := exportOptions{delimiter: ','}
	if err := options.Apply(&o, opts...); err != nil {
		return err
	}

	axes, err := selectAxes(log, o)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	if err := cw.Write(headerRow(axes)); err != nil {
		return err
	}

	scale := log.Header.AxisScale
	target := scale
	if o.targetScale != nil {
		target = *o.targetScale
	}

	leafPairs := log.Header.MlcModel.LeafPairCount()
	n := log.NumSnapshots()

	row := make([]string, 0, 1+totalSamples(axes))
	for snap := 0; snap < n; snap++ {
		row = row[:0]
		row = append(row, fmt.Sprintf("%d", snap*int(log.Header.SamplingIntervalMs)))

		for _, a := range axes {
			for offset := 0; offset < a.Stride; offset++ {
				v := float64(a.Data[snap*a.Stride+offset])
				v = convertSample(a.Kind, offset, leafPairs, scale, target, v)
				row = append(row, fmt.Sprintf("%g", v))
			}
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// selectAxes resolves the export's axis list: the explicit request (every
// axis must be sampled), or all sampled axes in header order.
func selectAxes(log *trajlog.TrajectoryLog, o exportOptions) ([]timeseries.AxisData, error) {
	if o.axes == nil {
		return log.Axes(), nil
	}

	axes := make([]timeseries.AxisData, 0, len(o.axes))
	for _, kind := range o.axes {
		a, err := log.Store.Axis(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: export requested axis %s", errs.ErrInvalidOperation, kind)
		}

		axes = append(axes, a)
	}

	return axes, nil
}

func headerRow(axes []timeseries.AxisData) []string {
	header := make([]string, 0, 1+totalSamples(axes))
	header = append(header, "Time (ms)")

	for _, a := range axes {
		for offset := 0; offset < a.Stride; offset++ {
			header = append(header, fmt.Sprintf("%s[%d]", a.Kind, offset))
		}
	}

	return header
}

func totalSamples(axes []timeseries.AxisData) int {
	total := 0
	for _, a := range axes {
		total += a.Stride
	}

	return total
}

// convertSample maps one sample to the target scale. Scalar axes convert
// through the per-axis rules; MLC leaf samples apply the bank sign rule, and
// MLC carriage samples pass through unchanged.
func convertSample(kind format.AxisKind, offset, leafPairs int, from, to format.Scale, v float64) float64 {
	if from == to {
		return v
	}

	if kind != format.AxisMLC {
		return timeseries.Convert(from, to, kind, v)
	}

	if offset < 4 {
		return v // carriage samples
	}

	bank := (offset - 4) / (leafPairs * 2)
	if to == format.ModifiedIEC61217 {
		return timeseries.LeafToIec(bank, v)
	}

	return timeseries.LeafFromIec(bank, v)
}
