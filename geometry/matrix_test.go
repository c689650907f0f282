package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/geometry"
)

func TestRotationApply(t *testing.T) {
	p := geometry.Rotation(90).Apply(geometry.Point{X: 1, Y: 0})
	require.InDelta(t, 0.0, p.X, 1e-12)
	require.InDelta(t, 1.0, p.Y, 1e-12)
}

func TestMatrixMul(t *testing.T) {
	m := geometry.Rotation(30).Mul(geometry.Rotation(60))
	p := m.Apply(geometry.Point{X: 1, Y: 0})

	require.InDelta(t, 0.0, p.X, 1e-12)
	require.InDelta(t, 1.0, p.Y, 1e-12)
}

func TestMatrixGetOutOfRange(t *testing.T) {
	m := geometry.Identity()

	v, err := m.Get(1, 1)
	require.NoError(t, err)
	require.InDelta(t, 1.0, v, 1e-12)

	_, err = m.Get(2, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = m.Get(0, -1)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestScaleMatrix(t *testing.T) {
	p := geometry.Scale(2, 3).Apply(geometry.Point{X: 1, Y: 1})
	require.InDelta(t, 2.0, p.X, 1e-12)
	require.InDelta(t, 3.0, p.Y, 1e-12)
}
