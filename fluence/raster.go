package fluence

import (
	"math"

	"github.com/clarityrt/trajlog/geometry"
)

// fullCoverEps treats a pixel as fully covered when its clipped area reaches
// 1-fullCoverEps, skipping exact-area bookkeeping for interior pixels.
const fullCoverEps = 1e-9

// xRangeInBand returns the polygon's X extent within the horizontal band
// [y0, y1], or ok=false when the polygon does not reach the band.
func xRangeInBand(pts []geometry.Point, y0, y1 float64) (minX, maxX float64, ok bool) {
	minX, maxX = math.Inf(1), math.Inf(-1)

	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]

		if p.Y < y0 && q.Y < y0 || p.Y > y1 && q.Y > y1 {
			continue
		}

		if p.Y == q.Y {
			// Horizontal edge inside the band contributes both endpoints.
			minX = math.Min(minX, math.Min(p.X, q.X))
			maxX = math.Max(maxX, math.Max(p.X, q.X))
			ok = true

			continue
		}

		t0 := clamp01((y0 - p.Y) / (q.Y - p.Y))
		t1 := clamp01((y1 - p.Y) / (q.Y - p.Y))

		x0 := p.X + t0*(q.X-p.X)
		x1 := p.X + t1*(q.X-p.X)

		minX = math.Min(minX, math.Min(x0, x1))
		maxX = math.Max(maxX, math.Max(x0, x1))
		ok = true
	}

	return minX, maxX, ok
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// rasterizeExact accumulates value into g for every pixel the polygon
// touches, weighted by the exact polygon-pixel intersection area computed
// with Sutherland-Hodgman clipping. The polygon is expressed in pixel
// coordinates (one pixel = one unit square).
func rasterizeExact(g *GridF, poly geometry.Polygon, bounds geometry.AABB, value float64) {
	rowLo := clampInt(int(math.Floor(bounds.MinY)), 0, g.Rows-1)
	rowHi := clampInt(int(math.Ceil(bounds.MaxY)), 0, g.Rows)

	for row := rowLo; row < rowHi; row++ {
		y0, y1 := float64(row), float64(row+1)

		minX, maxX, ok := xRangeInBand(poly.Points, y0, y1)
		if !ok {
			continue
		}

		colLo := clampInt(int(math.Floor(minX)), 0, g.Cols-1)
		colHi := clampInt(int(math.Ceil(maxX)), 0, g.Cols)

		for col := colLo; col < colHi; col++ {
			pixel := geometry.AABB{
				MinX: float64(col), MinY: y0,
				MaxX: float64(col + 1), MaxY: y1,
			}

			area, err := geometry.ClippedArea(poly, pixel)
			if err != nil || area <= 0 {
				continue
			}

			if area >= 1-fullCoverEps {
				area = 1
			}

			g.AddAt(col, row, value*area)
		}
	}
}

// rasterizeApprox accumulates value along each row's midline span: the
// polygon is sampled at y = row+0.5 and each pixel receives the fraction of
// the span it covers in X, ignoring partial coverage in Y. Midline
// sampling keeps vertex tangencies unambiguous.
func rasterizeApprox(g *GridF, poly geometry.Polygon, bounds geometry.AABB, value float64) {
	rowLo := clampInt(int(math.Floor(bounds.MinY)), 0, g.Rows-1)
	rowHi := clampInt(int(math.Ceil(bounds.MaxY)), 0, g.Rows)

	pts := poly.Points
	n := len(pts)

	for row := rowLo; row < rowHi; row++ {
		y := float64(row) + 0.5

		startX, endX := math.Inf(1), math.Inf(-1)
		hit := false

		for i := 0; i < n; i++ {
			p, q := pts[i], pts[(i+1)%n]

			if p.Y == q.Y {
				// Horizontal edges are covered by the half-open rule on the
				// adjoining edges; counting them here would double-book rows
				// shared by two stacked apertures.
				continue
			}

			// Half-open edge interval so a vertex shared by two edges is
			// counted once.
			if (y >= p.Y && y < q.Y) || (y >= q.Y && y < p.Y) {
				t := (y - p.Y) / (q.Y - p.Y)
				x := p.X + t*(q.X-p.X)

				startX = math.Min(startX, x)
				endX = math.Max(endX, x)
				hit = true
			}
		}

		if !hit || endX <= startX {
			continue
		}

		colLo := clampInt(int(math.Floor(startX)), 0, g.Cols-1)
		colHi := clampInt(int(math.Ceil(endX)), 0, g.Cols)

		for col := colLo; col < colHi; col++ {
			cover := math.Min(float64(col+1), endX) - math.Max(float64(col), startX)
			if cover <= 0 {
				continue
			}

			g.AddAt(col, row, value*cover)
		}
	}
}

func clampInt(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
