package gamma_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/gamma"
)

func constantGrid(cols, rows int, value float64) fluence.GridF {
	g := fluence.NewGridF(0, 0, float64(cols), float64(rows), cols, rows)
	for i := range g.Data {
		g.Data[i] = value
	}

	return g
}

func TestGammaIdenticalGridsAllZero(t *testing.T) {
	ref := constantGrid(20, 20, 2.0)
	cmp := constantGrid(20, 20, 2.0)

	result, err := gamma.Compare(ref, cmp, 1.0, 1.0)
	require.NoError(t, err)

	require.Equal(t, 400, result.Evaluated)
	require.InDelta(t, 1.0, result.FracPass, 1e-12)
	require.InDelta(t, 0.0, result.Median(), 1e-9)
}

func TestGammaHalfToleranceDoseDifference(t *testing.T) {
	// A uniform 0.5% dose offset at 1%/1mm should land every pixel near
	// gamma = 0.5 and pass everywhere.
	ref := constantGrid(20, 20, 1.0)
	cmp := constantGrid(20, 20, 1.005)

	result, err := gamma.Compare(ref, cmp, 1.0, 1.0)
	require.NoError(t, err)

	require.Equal(t, 400, result.Evaluated)
	require.InDelta(t, 1.0, result.FracPass, 1e-12)

	for _, g := range result.GammaMap.Data {
		require.GreaterOrEqual(t, g, 0.0)
		require.InDelta(t, 0.5, g, 0.01)
	}

	require.InDelta(t, 0.5, result.Median(), 0.01)
}

// lowDoseErrorGrids returns a reference with a high-dose pixel far from a
// low-dose region carrying a 10% local error in the compared grid.
func lowDoseErrorGrids() (ref, cmp fluence.GridF) {
	ref = constantGrid(10, 10, 1.0)
	cmp = constantGrid(10, 10, 1.0)

	// High-dose maximum in one corner of both grids.
	ref.Set(0, 0, 10.0)
	cmp.Set(0, 0, 10.0)

	// 10% local error far from the high-dose pixel.
	cmp.Set(8, 8, 1.1)

	return ref, cmp
}

func TestGammaGlobalPassesLocalFails(t *testing.T) {
	ref, cmp := lowDoseErrorGrids()

	global, err := gamma.Compare(ref, cmp, 1.0, 3.0, gamma.WithThreshold(5))
	require.NoError(t, err)

	errPixel := global.GammaMap.At(8, 8)
	require.GreaterOrEqual(t, errPixel, 0.0)
	require.LessOrEqual(t, errPixel, 1.0) // 0.1/10 max = 1% against 3% tolerance

	local, err := gamma.Compare(ref, cmp, 1.0, 3.0,
		gamma.WithThreshold(5), gamma.WithLocalNormalization())
	require.NoError(t, err)

	errPixel = local.GammaMap.At(8, 8)
	require.Greater(t, errPixel, 1.0) // 10% local error against 3% tolerance
}

func TestGammaThresholdExclusion(t *testing.T) {
	ref := constantGrid(10, 10, 1.0)
	cmp := constantGrid(10, 10, 1.0)
	cmp.Set(5, 5, 100.0) // pushes the threshold above the background

	result, err := gamma.Compare(ref, cmp, 1.0, 1.0)
	require.NoError(t, err)

	// Only the high pixel clears the 10% threshold; everything else carries
	// the sentinel.
	require.Equal(t, 1, result.Evaluated)
	require.InDelta(t, gamma.Unevaluated, result.GammaMap.At(0, 0), 1e-12)
}

func TestGammaRejectsTinyDta(t *testing.T) {
	ref := constantGrid(4, 4, 1.0)
	cmp := constantGrid(4, 4, 1.0)

	_, err := gamma.Compare(ref, cmp, 0.05, 1.0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestGammaSpatialShiftWithinDta(t *testing.T) {
	// A one-pixel (1mm) shift of a gradient must pass at 3%/3mm: the search
	// finds the matching dose within the DTA radius.
	ref := fluence.NewGridF(0, 0, 20, 20, 20, 20)
	cmp := fluence.NewGridF(0, 0, 20, 20, 20, 20)

	for row := 0; row < 20; row++ {
		for col := 0; col < 20; col++ {
			ref.Set(col, row, 10+float64(col))
			cmp.Set(col, row, 10+float64(col)+1) // same gradient shifted 1mm
		}
	}

	result, err := gamma.Evaluate(ref, cmp, gamma.Parameters2D{
		DtaTolMm:         3,
		DoseTolPercent:   3,
		Global:           true,
		ThresholdPercent: 10,
		SamplingRate:     5,
	})
	require.NoError(t, err)

	// Interior pixels find the matching dose 1mm away; only the trailing
	// edge column, whose match lies outside the reference, can fail.
	require.GreaterOrEqual(t, result.FracPass, 0.95)
	require.LessOrEqual(t, result.GammaMap.At(10, 10), 0.5)
}
