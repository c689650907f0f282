package geometry

import "github.com/clarityrt/trajlog/errs"

// maxClipVertices bounds the clipper's scratch buffers. A 4-vertex subject
// polygon clipped against an axis-aligned rectangle can never produce more
// than 8 vertices; 16 leaves ample headroom.
const maxClipVertices = 16

// clipBuf is a fixed-capacity vertex buffer used as clip scratch space so
// the clipping stages never allocate on the heap; only the returned polygon
// is allocated.
type clipBuf struct {
	pts [maxClipVertices]Point
	n   int
}

func (b *clipBuf) reset() { b.n = 0 }

func (b *clipBuf) push(p Point) error {
	if b.n >= maxClipVertices {
		return errs.ErrOutOfRange
	}

	b.pts[b.n] = p
	b.n++

	return nil
}

func (b *clipBuf) slice() []Point { return b.pts[:b.n] }

// edgeClipper classifies a point against one of the four AABB half-planes
// and computes the intersection with the previous point when the edge
// crosses the clip boundary.
type edgeClipper struct {
	inside func(p Point) bool
	isect  func(a, b Point) Point
}

func clipStages(box AABB) [4]edgeClipper {
	return [4]edgeClipper{
		{ // minX
			inside: func(p Point) bool { return p.X >= box.MinX },
			isect: func(a, b Point) Point {
				t := (box.MinX - a.X) / (b.X - a.X)
				return Point{X: box.MinX, Y: a.Y + t*(b.Y-a.Y)}
			},
		},
		{ // maxX
			inside: func(p Point) bool { return p.X <= box.MaxX },
			isect: func(a, b Point) Point {
				t := (box.MaxX - a.X) / (b.X - a.X)
				return Point{X: box.MaxX, Y: a.Y + t*(b.Y-a.Y)}
			},
		},
		{ // minY
			inside: func(p Point) bool { return p.Y >= box.MinY },
			isect: func(a, b Point) Point {
				t := (box.MinY - a.Y) / (b.Y - a.Y)
				return Point{X: a.X + t*(b.X-a.X), Y: box.MinY}
			},
		},
		{ // maxY
			inside: func(p Point) bool { return p.Y <= box.MaxY },
			isect: func(a, b Point) Point {
				t := (box.MaxY - a.Y) / (b.Y - a.Y)
				return Point{X: a.X + t*(b.X-a.X), Y: box.MaxY}
			},
		},
	}
}

// ClipToAABB clips subject against box using the Sutherland-Hodgman
// algorithm, run as four sequential half-plane passes (minX, maxX, minY,
// maxY). It returns the clipped polygon, or ErrOutOfRange if an
// intermediate stage would exceed the fixed 16-vertex scratch buffer
// (never expected for a 4-vertex subject against a rectangle).
func ClipToAABB(subject Polygon, box AABB) (Polygon, error) {
	var a, b clipBuf
	for i, p := range subject.Points {
		if i >= maxClipVertices {
			return Polygon{}, errs.ErrOutOfRange
		}
		a.pts[i] = p
	}
	a.n = len(subject.Points)

	cur, next := &a, &b
	for _, stage := range clipStages(box) {
		next.reset()

		n := cur.n
		if n == 0 {
			break
		}

		for i := 0; i < n; i++ {
			curPt := cur.pts[i]
			prevPt := cur.pts[(i-1+n)%n]

			curIn := stage.inside(curPt)
			prevIn := stage.inside(prevPt)

			if curIn {
				if !prevIn {
					if err := next.push(stage.isect(prevPt, curPt)); err != nil {
						return Polygon{}, err
					}
				}
				if err := next.push(curPt); err != nil {
					return Polygon{}, err
				}
			} else if prevIn {
				if err := next.push(stage.isect(prevPt, curPt)); err != nil {
					return Polygon{}, err
				}
			}
		}

		cur, next = next, cur
	}

	out := make([]Point, cur.n)
	copy(out, cur.slice())

	return NewPolygon(out...), nil
}

// ClippedArea clips subject against box and returns the resulting area,
// i.e. the exact intersection area between an arbitrary polygon and an
// axis-aligned rectangle.
func ClippedArea(subject Polygon, box AABB) (float64, error) {
	clipped, err := ClipToAABB(subject, box)
	if err != nil {
		return 0, err
	}

	return clipped.Area(), nil
}
