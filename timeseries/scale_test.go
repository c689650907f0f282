package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/timeseries"
)

func TestToIec(t *testing.T) {
	require.InDelta(t, 270.0, timeseries.ToIec(format.ModifiedIEC61217, format.AxisCouchRtn, 90), 1e-9)
	require.InDelta(t, 5.0, timeseries.ToIec(format.ModifiedIEC61217, format.AxisCouchVrt, 1005), 1e-9)
	require.InDelta(t, -10.0, timeseries.ToIec(format.MachineScale, format.AxisX1, 10), 1e-9)
}

func TestConvertGantryWrap(t *testing.T) {
	got := timeseries.Convert(format.ModifiedIEC61217, format.MachineScale, format.AxisGantryRtn, 359)
	require.InDelta(t, 181.0, got, 1e-9)
}

func TestConvertIdentityShortCircuit(t *testing.T) {
	got := timeseries.Convert(format.MachineScale, format.MachineScale, format.AxisCouchVrt, 1005)
	require.InDelta(t, 1005.0, got, 1e-9)
}

func TestScalarRecordErrorIsScaleAwareDelta(t *testing.T) {
	r := timeseries.ScalarRecord{
		Axis:     format.AxisGantryRtn,
		Scale:    format.ModifiedIEC61217,
		Expected: 359,
		Actual:   1,
	}

	// Wrap through zero: the error is the shortest arc, matching Delta.
	require.InDelta(t, 2.0, r.Error(), 1e-9)
	require.InDelta(t,
		timeseries.Delta(r.Scale, r.Expected, r.Scale, r.Actual, r.Axis),
		r.Error(), 1e-12)

	converted := r.WithScale(format.MachineScale)
	require.InDelta(t, r.Error(), converted.Error(), 1e-9)
}

func TestDeltaGantryWrap(t *testing.T) {
	// Gantry positions {358, 360, 2} at 1s intervals wrap through zero and
	// must yield velocities {0, 2, 2}, not -358.
	positions := []float64{358, 360, 2}
	series := timeseries.Series{
		Axis:               format.AxisGantryRtn,
		Scale:              format.MachineScale,
		SamplingIntervalMs: 1000,
		Len:                len(positions),
		At:                 func(i int) float64 { return positions[i] },
	}

	delta := series.GetDelta(time.Second)
	require.InDelta(t, 0.0, delta.Value(0), 1e-9)
	require.InDelta(t, 2.0, delta.Value(1), 1e-9)
	require.InDelta(t, 2.0, delta.Value(2), 1e-9)
}

func TestDoseRatePerMinute(t *testing.T) {
	// MU samples {0, 1, 1.5, 1.5} at 500ms intervals give {0, 120, 60, 0}
	// MU/min.
	mu := []float64{0, 1, 1.5, 1.5}
	series := timeseries.Series{
		Axis:               format.AxisMU,
		Scale:              format.MachineScale,
		SamplingIntervalMs: 500,
		Len:                len(mu),
		At:                 func(i int) float64 { return mu[i] },
	}

	rate := timeseries.DoseRatePerMinute(series)
	require.InDelta(t, 0.0, rate.Value(0), 1e-9)
	require.InDelta(t, 120.0, rate.Value(1), 1e-9)
	require.InDelta(t, 60.0, rate.Value(2), 1e-9)
	require.InDelta(t, 0.0, rate.Value(3), 1e-9)
}

func TestLinearSlopeDelta(t *testing.T) {
	const v = 3.5
	values := make([]float64, 5)
	for i := range values {
		values[i] = v * float64(i)
	}

	series := timeseries.Series{
		Axis:               format.AxisCouchLat,
		Scale:              format.MachineScale,
		SamplingIntervalMs: 100,
		Len:                len(values),
		At:                 func(i int) float64 { return values[i] },
	}

	delta := series.GetDelta(100 * time.Millisecond)
	require.InDelta(t, 0.0, delta.Value(0), 1e-9)
	for i := 1; i < len(values); i++ {
		require.InDelta(t, v, delta.Value(i), 1e-9)
	}
}
