package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/timeseries"
)

func buildScalarAxis(t *testing.T, kind format.AxisKind, pairs [][2]float32) timeseries.AxisData {
	t.Helper()

	data := make([]float32, 0, len(pairs)*2)
	for _, p := range pairs {
		data = append(data, p[0], p[1])
	}

	a, err := timeseries.NewAxisData(kind, 2, len(pairs), data)
	require.NoError(t, err)

	return a
}

func TestStoreScalarRoundTrip(t *testing.T) {
	x1 := buildScalarAxis(t, format.AxisX1, [][2]float32{{5, 5}, {5, 5.1}})
	x2 := buildScalarAxis(t, format.AxisX2, [][2]float32{{5, 5}, {5, 5.1}})
	y1 := buildScalarAxis(t, format.AxisY1, [][2]float32{{10, 10}, {10, 10}})
	y2 := buildScalarAxis(t, format.AxisY2, [][2]float32{{2, 2}, {2, 2}})

	store, err := timeseries.NewStore(1000, format.MachineScale, format.NDS120, 2, []timeseries.AxisData{x1, x2, y1, y2})
	require.NoError(t, err)

	row, err := store.Row(0)
	require.NoError(t, err)

	ex, ac, err := row.JawsX()
	require.NoError(t, err)
	require.InDelta(t, 10.0, ex, 1e-9)
	require.InDelta(t, 10.0, ac, 1e-9)

	_, ac, err = row.JawsY()
	require.NoError(t, err)
	require.InDelta(t, 12.0, ac, 1e-9)

	jawsX, err := store.JawsXSeries()
	require.NoError(t, err)
	delta := jawsX.GetDelta(time.Second)
	require.InDelta(t, 0.2, delta.Value(1), 1e-6)
}

func TestStoreMLCAxisRejectsScalarRecord(t *testing.T) {
	leafPairs := format.NDS80.LeafPairCount()
	stride := timeseries.MLCStride(leafPairs)
	data := make([]float32, stride*1)
	mlc, err := timeseries.NewAxisData(format.AxisMLC, stride, 1, data)
	require.NoError(t, err)

	store, err := timeseries.NewStore(1000, format.MachineScale, format.NDS80, 1, []timeseries.AxisData{mlc})
	require.NoError(t, err)

	row, err := store.Row(0)
	require.NoError(t, err)

	_, err = row.Scalar(format.AxisMLC)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)

	mlcRow, err := row.MLC()
	require.NoError(t, err)
	require.Equal(t, leafPairs, mlcRow.LeafPairs())
}

func TestStoreRowOutOfRange(t *testing.T) {
	x1 := buildScalarAxis(t, format.AxisX1, [][2]float32{{5, 5}})
	store, err := timeseries.NewStore(1000, format.MachineScale, format.NDS120, 1, []timeseries.AxisData{x1})
	require.NoError(t, err)

	_, err = store.Row(5)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}
