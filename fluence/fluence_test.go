package fluence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/mlc"
)

// openField is a 40mm x 100mm rectangular aperture: every leaf pair open
// from -20 to +20 with the jaws at +/-50 in both axes.
func openField(mu float64) fluence.StaticField {
	model := mlc.ModelFor(format.NDS120)

	bankA := make([]float64, model.LeafPairs())
	bankB := make([]float64, model.LeafPairs())
	for i := range bankA {
		bankA[i] = 20
		bankB[i] = -20
	}

	return fluence.StaticField{
		Jaw:   fluence.Jaws{X1: -50, Y1: -50, X2: 50, Y2: 50},
		BankA: bankA,
		BankB: bankB,
		MU:    mu,
		MLC:   model,
	}
}

func gridSum(g fluence.GridF) float64 {
	sum := 0.0
	for _, v := range g.Data {
		sum += v
	}

	return sum
}

func TestReconstructOpenFieldExact(t *testing.T) {
	result, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(1)},
		fluence.WithExtent(200, 200),
		fluence.WithGridSize(100, 100),
	)
	require.NoError(t, err)

	g := result.Grid
	require.Equal(t, 100, g.Cols)
	require.InDelta(t, 2.0, g.XRes(), 1e-9)

	// 1 MU over a 40x100mm aperture on 2x2mm pixels: total weight is
	// aperture area / pixel area.
	require.InDelta(t, 1000.0, gridSum(g), 1e-6)

	// The aperture's interior pixels carry the full MU weight.
	col := int((0 - g.X) / g.XRes())
	row := int((0 - g.Y) / g.YRes())
	require.InDelta(t, 1.0, g.At(col, row), 1e-9)

	// Pixels outside the jaw opening stay empty.
	require.InDelta(t, 0.0, g.At(2, 2), 1e-12)

	require.Len(t, result.JawOutlines, 1)
}

func TestReconstructApproximateCloseToExact(t *testing.T) {
	exact, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(1)},
		fluence.WithExtent(200, 200),
		fluence.WithGridSize(100, 100),
	)
	require.NoError(t, err)

	approx, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(1)},
		fluence.WithExtent(200, 200),
		fluence.WithGridSize(100, 100),
		fluence.WithApproximateFluence(),
	)
	require.NoError(t, err)

	require.InDelta(t, gridSum(exact.Grid), gridSum(approx.Grid), 0.02*gridSum(exact.Grid))
}

func TestReconstructRotatedCollimatorPreservesWeight(t *testing.T) {
	result, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(1)},
		fluence.WithExtent(300, 300),
		fluence.WithGridSize(150, 150),
		fluence.WithFixedCollimatorAngle(45),
	)
	require.NoError(t, err)

	// Rotation moves the aperture but not its area.
	require.InDelta(t, 1000.0, gridSum(result.Grid), 1e-6)
}

func TestReconstructAutoExtentMargin(t *testing.T) {
	result, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(1)},
		fluence.WithMargin(10),
	)
	require.NoError(t, err)

	g := result.Grid
	require.InDelta(t, -60.0, g.X, 1e-9)
	require.InDelta(t, -60.0, g.Y, 1e-9)
	require.InDelta(t, 120.0, g.Width, 1e-9)
	require.InDelta(t, 120.0, g.Height, 1e-9)
}

func TestReconstructSkipsBeamHoldsWhenExcluded(t *testing.T) {
	held := openField(1)
	held.BeamHold = true

	result, err := fluence.Reconstruct(
		[]fluence.FieldData{held},
		fluence.WithExtent(200, 200),
		fluence.WithExcludeBeamHolds(),
	)
	require.NoError(t, err)
	require.InDelta(t, 0.0, gridSum(result.Grid), 1e-12)

	// Without the option the held snapshot still contributes.
	result, err = fluence.Reconstruct(
		[]fluence.FieldData{held},
		fluence.WithExtent(200, 200),
	)
	require.NoError(t, err)
	require.Greater(t, gridSum(result.Grid), 0.0)
}

func TestReconstructSkipsTinyDeltaMu(t *testing.T) {
	result, err := fluence.Reconstruct(
		[]fluence.FieldData{openField(0)},
		fluence.WithExtent(200, 200),
	)
	require.NoError(t, err)
	require.InDelta(t, 0.0, gridSum(result.Grid), 1e-12)
}

func TestReconstructParallelMatchesSerial(t *testing.T) {
	fields := make([]fluence.FieldData, 8)
	for i := range fields {
		fields[i] = openField(0.5)
	}

	serial, err := fluence.Reconstruct(fields,
		fluence.WithExtent(200, 200),
		fluence.WithMaxParallelism(1),
	)
	require.NoError(t, err)

	parallel, err := fluence.Reconstruct(fields,
		fluence.WithExtent(200, 200),
		fluence.WithMaxParallelism(4),
	)
	require.NoError(t, err)

	require.InDeltaSlice(t, serial.Grid.Data, parallel.Grid.Data, 1e-9)
}

func TestGridAddShapeMismatch(t *testing.T) {
	a := fluence.NewGridF(0, 0, 10, 10, 5, 5)
	b := fluence.NewGridF(0, 0, 10, 10, 4, 4)

	err := a.Add(b)
	require.Error(t, err)
}
