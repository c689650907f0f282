package fluence

import "github.com/clarityrt/trajlog/geometry"

// collimatorAngle resolves a snapshot's effective collimator angle under the
// FixedCollimatorAngle override.
func collimatorAngle(f FieldData, o FluenceOptions) float64 {
	if o.FixedCollimatorAngle != nil {
		return *o.FixedCollimatorAngle
	}

	return f.CollimatorAngle()
}

// rotatedJawOutline rotates the four jaw corners about the isocenter by the
// collimator angle, returning the rotated field outline.
func rotatedJawOutline(f FieldData, collDeg float64) geometry.Polygon {
	j := f.Jaws()
	m := geometry.Rotation(collDeg)

	corners := [4]geometry.Point{
		{X: j.X1, Y: j.Y1},
		{X: j.X2, Y: j.Y1},
		{X: j.X2, Y: j.Y2},
		{X: j.X1, Y: j.Y2},
	}

	rotated := make([]geometry.Point, 4)
	for i, c := range corners {
		rotated[i] = m.Apply(c)
	}

	return geometry.NewPolygon(rotated...)
}

// computeExtent derives the grid bounds for a field sequence: the union of
// every snapshot's rotated jaw AABB, expanded by Margin, plus the rotated
// outline of the configuration with the largest bounding box (kept on the
// result for plotting and the gold-standard format). A user-fixed extent
// overrides the automatic bounds and is centered at the origin.
func computeExtent(fields []FieldData, o FluenceOptions) (geometry.AABB, geometry.Polygon) {
	var (
		union      geometry.AABB
		outline    geometry.Polygon
		maxArea    float64
		haveBounds bool
	)

	for _, f := range fields {
		poly := rotatedJawOutline(f, collimatorAngle(f, o))
		box := poly.AABB()

		if !haveBounds {
			union = box
			haveBounds = true
		} else {
			union = union.Union(box)
		}

		if area := box.Area(); area > maxArea || outline.Points == nil {
			maxArea = area
			outline = poly
		}
	}

	if o.Width > 0 && o.Height > 0 {
		return geometry.AABB{
			MinX: -o.Width / 2, MinY: -o.Height / 2,
			MaxX: o.Width / 2, MaxY: o.Height / 2,
		}, outline
	}

	return union.Expand(o.Margin), outline
}
