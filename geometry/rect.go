// Package geometry provides the 2-D primitives shared by the fluence and
// gamma engines: axis-aligned rectangles and bounding boxes, a 2x2
// rotation/scale matrix, polygons, and rotated-rectangle construction with
// Sutherland-Hodgman clipping.
package geometry

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X, Y, W, H float64
}

// MinX, MinY, MaxX, MaxY return the rectangle's corners.
func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether the point (x, y) lies within the rectangle,
// inclusive of its boundary.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX() && x <= r.MaxX() && y >= r.MinY() && y <= r.MaxY()
}

// AABB is an axis-aligned bounding box expressed by its min/max corners,
// used for extent tracking and per-aperture bounds.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width and Height return the AABB's extents.
func (b AABB) Width() float64  { return b.MaxX - b.MinX }
func (b AABB) Height() float64 { return b.MaxY - b.MinY }

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Area returns the AABB's area (zero for a degenerate or inverted box).
func (b AABB) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}

	return w * h
}

// Expand returns b grown by margin on every side.
func (b AABB) Expand(margin float64) AABB {
	return AABB{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// ToRect converts the AABB to a Rect.
func (b AABB) ToRect() Rect {
	return Rect{X: b.MinX, Y: b.MinY, W: b.Width(), H: b.Height()}
}

// AABBFromPoints returns the tight bounding box of the given points. Panics
// (via a slice index) is impossible; an empty slice returns a degenerate
// zero-area AABB at the origin.
func AABBFromPoints(pts []Point) AABB {
	if len(pts) == 0 {
		return AABB{}
	}

	b := AABB{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}

	return b
}

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}
