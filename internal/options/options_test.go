package options_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/internal/options"
)

type gridConfig struct {
	cols, rows int
	margin     float64
}

func withCols(n int) options.Option[*gridConfig] {
	return options.NoError(func(c *gridConfig) { c.cols = n })
}

func withMargin(m float64) options.Option[*gridConfig] {
	return options.New(func(c *gridConfig) error {
		if m < 0 {
			return errors.New("negative margin")
		}

		c.margin = m

		return nil
	})
}

func TestApplyInOrder(t *testing.T) {
	c := gridConfig{cols: 100, rows: 100, margin: 10}

	err := options.Apply(&c, withCols(50), withCols(64), withMargin(5))
	require.NoError(t, err)
	require.Equal(t, 64, c.cols)
	require.Equal(t, 100, c.rows)
	require.InDelta(t, 5.0, c.margin, 1e-12)
}

func TestApplyStopsAtFirstError(t *testing.T) {
	c := gridConfig{}

	err := options.Apply(&c, withMargin(-1), withCols(50))
	require.Error(t, err)
	require.Equal(t, 0, c.cols)
}

func TestApplyNoOptions(t *testing.T) {
	c := gridConfig{cols: 1}
	require.NoError(t, options.Apply(&c))
	require.Equal(t, 1, c.cols)
}
