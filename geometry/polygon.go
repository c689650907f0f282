package geometry

import "math"

// Polygon is an ordered sequence of vertices. No particular winding order is
// assumed; Area takes the absolute value of the shoelace sum so it is
// invariant to winding direction.
type Polygon struct {
	Points []Point
}

// NewPolygon wraps pts as a Polygon.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Points: pts}
}

// Area returns the polygon's area via the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.Points[i].X*p.Points[j].Y - p.Points[j].X*p.Points[i].Y
	}

	return math.Abs(sum) / 2
}

// AABB returns the polygon's tight axis-aligned bounding box.
func (p Polygon) AABB() AABB {
	return AABBFromPoints(p.Points)
}

// RotatedRect is a rectangle of width w and height h centered at (cx, cy),
// rotated by angleDeg degrees counter-clockwise, as used for every MLC leaf
// aperture and the jaw outline in the fluence engine.
type RotatedRect struct {
	CenterX, CenterY float64
	Width, Height    float64
	AngleDeg         float64
}

// Corners returns the four rotated corners in the order {TR, BR, BL, TL}
// (clockwise with Y up) via the half-width/half-height decomposition:
// hwX=(w/2)cosθ, hwY=(w/2)sinθ, hhX=-(h/2)sinθ, hhY=(h/2)cosθ.
func (r RotatedRect) Corners() [4]Point {
	rad := r.AngleDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	hwX := (r.Width / 2) * cos
	hwY := (r.Width / 2) * sin
	hhX := -(r.Height / 2) * sin
	hhY := (r.Height / 2) * cos

	cx, cy := r.CenterX, r.CenterY

	return [4]Point{
		{X: cx + hwX + hhX, Y: cy + hwY + hhY}, // TR
		{X: cx + hwX - hhX, Y: cy + hwY - hhY}, // BR
		{X: cx - hwX - hhX, Y: cy - hwY - hhY}, // BL
		{X: cx - hwX + hhX, Y: cy - hwY + hhY}, // TL
	}
}

// Bounds returns the tight AABB of the rotated rectangle, computed directly
// from the half-extent decomposition (|hwX|+|hhX|, |hwY|+|hhY|) rather than
// by re-scanning the corners.
func (r RotatedRect) Bounds() AABB {
	rad := r.AngleDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	hwX := (r.Width / 2) * cos
	hwY := (r.Width / 2) * sin
	hhX := -(r.Height / 2) * sin
	hhY := (r.Height / 2) * cos

	extX := math.Abs(hwX) + math.Abs(hhX)
	extY := math.Abs(hwY) + math.Abs(hhY)

	return AABB{
		MinX: r.CenterX - extX,
		MinY: r.CenterY - extY,
		MaxX: r.CenterX + extX,
		MaxY: r.CenterY + extY,
	}
}

// Polygon returns the rectangle's four corners as a Polygon.
func (r RotatedRect) Polygon() Polygon {
	c := r.Corners()
	return NewPolygon(c[0], c[1], c[2], c[3])
}
