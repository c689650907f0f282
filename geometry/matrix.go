package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/clarityrt/trajlog/errs"
)

// Matrix is a 2x2 linear transform (rotation and/or scale) backed by
// gonum's mat.Dense, used to rotate jaw corners and leaf apertures by the
// collimator angle.
type Matrix struct {
	d *mat.Dense
}

// NewMatrix builds a 2x2 matrix from row-major entries.
func NewMatrix(m00, m01, m10, m11 float64) Matrix {
	return Matrix{d: mat.NewDense(2, 2, []float64{m00, m01, m10, m11})}
}

// Identity returns the 2x2 identity matrix.
func Identity() Matrix {
	return NewMatrix(1, 0, 0, 1)
}

// Rotation returns the counter-clockwise rotation matrix for angleDeg
// degrees, matching the IEC collimator-angle convention used throughout the
// fluence engine.
func Rotation(angleDeg float64) Matrix {
	rad := angleDeg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)

	return NewMatrix(c, -s, s, c)
}

// Scale returns a diagonal scale matrix.
func Scale(sx, sy float64) Matrix {
	return NewMatrix(sx, 0, 0, sy)
}

// At returns the entry at (row, col). Both must be in [0, 2); otherwise the
// gonum backing matrix panics, matching "matrix indexing past [2,2]".
func (m Matrix) At(row, col int) float64 {
	return m.d.At(row, col)
}

// Apply transforms a point by the matrix: (x, y) -> M * (x, y).
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.At(0, 0)*p.X + m.At(0, 1)*p.Y,
		Y: m.At(1, 0)*p.X + m.At(1, 1)*p.Y,
	}
}

// Get returns the entry at (row, col), or ErrOutOfRange if either index is
// outside [0, 2).
func (m Matrix) Get(row, col int) (float64, error) {
	if row < 0 || row >= 2 || col < 0 || col >= 2 {
		return 0, errs.ErrOutOfRange
	}

	return m.At(row, col), nil
}

// Mul returns m * o (matrix-matrix multiplication).
func (m Matrix) Mul(o Matrix) Matrix {
	var out mat.Dense
	out.Mul(m.d, o.d)

	return Matrix{d: &out}
}
