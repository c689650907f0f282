package mlc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/mlc"
)

func TestModelGeometry(t *testing.T) {
	tests := []struct {
		tag     format.MlcModel
		pairs   int
		extent  float64
		firstW  float64
		midW    float64
		firstCY float64
	}{
		{format.NDS80, 40, 400, 10, 10, -195},
		{format.NDS120, 60, 400, 10, 5, -195},
		{format.NDS120HD, 60, 220, 5, 2.5, -107.5},
	}

	for _, tc := range tests {
		t.Run(tc.tag.String(), func(t *testing.T) {
			m := mlc.ModelFor(tc.tag)

			require.Equal(t, tc.pairs, m.LeafPairs())
			require.InDelta(t, tc.extent, m.FieldExtentY(), 1e-9)
			require.InDelta(t, tc.firstW, m.Width(0), 1e-9)
			require.InDelta(t, tc.midW, m.Width(tc.pairs/2), 1e-9)
			require.InDelta(t, tc.firstCY, m.CenterY(0), 1e-9)

			// Centers must stack upward with no gaps: each pair's top edge is
			// the next pair's bottom edge.
			for i := 0; i < m.LeafPairs()-1; i++ {
				top := m.CenterY(i) + m.Width(i)/2
				bottom := m.CenterY(i+1) - m.Width(i+1)/2
				require.InDelta(t, top, bottom, 1e-9)
			}

			// Symmetric about the isocenter.
			last := m.LeafPairs() - 1
			require.InDelta(t, -m.CenterY(0), m.CenterY(last), 1e-9)
		})
	}
}
