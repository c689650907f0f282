package goldfmt_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/geometry"
	"github.com/clarityrt/trajlog/goldfmt"
)

func buildFluence() *fluence.FieldFluence {
	grid := fluence.NewGridF(-60, -60, 120, 120, 4, 4)
	for i := range grid.Data {
		grid.Data[i] = float64(i) * 0.25
	}

	opts := fluence.DefaultOptions()
	opts.Cols, opts.Rows = 4, 4
	opts.UseApproximateFluence = true
	angle := 30.0
	opts.FixedCollimatorAngle = &angle

	return &fluence.FieldFluence{
		Grid:    grid,
		Options: opts,
		JawOutlines: []geometry.Polygon{
			geometry.NewPolygon(
				geometry.Point{X: -50, Y: -50},
				geometry.Point{X: 50, Y: -50},
				geometry.Point{X: 50, Y: 50},
				geometry.Point{X: -50, Y: 50},
			),
		},
	}
}

func TestMarshalUnmarshalSymmetry(t *testing.T) {
	f := buildFluence()

	data, err := goldfmt.Marshal(f)
	require.NoError(t, err)

	got, err := goldfmt.Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, f.Grid, got.Grid)
	require.Equal(t, f.JawOutlines, got.JawOutlines)

	require.Equal(t, f.Options.Cols, got.Options.Cols)
	require.Equal(t, f.Options.UseApproximateFluence, got.Options.UseApproximateFluence)
	require.NotNil(t, got.Options.FixedCollimatorAngle)
	require.InDelta(t, 30.0, *got.Options.FixedCollimatorAngle, 1e-12)
	require.InDelta(t, f.Options.MinDeltaMu, got.Options.MinDeltaMu, 1e-15)
}

func TestFileRoundTrip(t *testing.T) {
	f := buildFluence()
	path := filepath.Join(t.TempDir(), "field1.gold")

	require.NoError(t, goldfmt.Write(path, f))

	got, err := goldfmt.Read(path)
	require.NoError(t, err)
	require.Equal(t, f.Grid, got.Grid)
}

func TestUnmarshalRejectsBadSignature(t *testing.T) {
	_, err := goldfmt.Unmarshal([]byte("definitely not a gold-standard blob"))
	require.ErrorIs(t, err, errs.ErrInvalidSignature)
}

func TestUnmarshalTruncated(t *testing.T) {
	f := buildFluence()

	data, err := goldfmt.Marshal(f)
	require.NoError(t, err)

	_, err = goldfmt.Unmarshal(data[:len(data)-4])
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReadMissingFile(t *testing.T) {
	_, err := goldfmt.Read(filepath.Join(t.TempDir(), "absent.gold"))
	require.ErrorIs(t, err, errs.ErrNotFound)
}
