// Package stats provides the small numeric utility the core needs directly
// (equal-width histogram bucketing), as opposed to full statistics
// aggregation, which stays a caller-side concern.
package stats

import "github.com/clarityrt/trajlog/errs"

// Histogram buckets data into the given number of equal-width bins spanning
// [min(data), max(data)], with the final bin inclusive of the maximum value.
// It returns the per-bin count and each bin's starting edge.
func Histogram(data []float64, bins int) ([]int, []float64, error) {
	if len(data) == 0 || bins <= 0 {
		return nil, nil, errs.ErrOutOfRange
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	width := (hi - lo) / float64(bins)

	starts := make([]float64, bins)
	for i := range starts {
		starts[i] = lo + float64(i)*width
	}

	counts := make([]int, bins)
	for _, v := range data {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
		}
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	return counts, starts, nil
}
