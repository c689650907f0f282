package stats_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/stats"
)

func TestHistogram(t *testing.T) {
	counts, starts, err := stats.Histogram([]float64{-10, -5, 0, 5, 10}, 2)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, counts)
	require.Equal(t, []float64{-10, 0}, starts)
}

func TestHistogramRejectsEmptyOrZeroBins(t *testing.T) {
	_, _, err := stats.Histogram(nil, 2)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, _, err = stats.Histogram([]float64{1, 2}, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}
