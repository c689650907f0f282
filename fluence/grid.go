package fluence

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
)

// GridF is a 2-D raster of floats with explicit axis-aligned bounds and an
// integer pixel count. Data is row-major with row 0 at the minimum Y.
type GridF struct {
	X, Y          float64
	Width, Height float64
	Cols, Rows    int
	Data          []float64
}

// NewGridF allocates a zeroed grid covering [x, x+width) x [y, y+height)
// with cols x rows pixels.
func NewGridF(x, y, width, height float64, cols, rows int) GridF {
	return GridF{
		X: x, Y: y,
		Width: width, Height: height,
		Cols: cols, Rows: rows,
		Data: make([]float64, cols*rows),
	}
}

// XRes and YRes return the pixel pitch in each axis.
func (g GridF) XRes() float64 { return g.Width / float64(g.Cols) }
func (g GridF) YRes() float64 { return g.Height / float64(g.Rows) }

// Index returns the row-major data index of pixel (col, row).
func (g GridF) Index(col, row int) int { return row*g.Cols + col }

// At returns the value at pixel (col, row).
func (g GridF) At(col, row int) float64 { return g.Data[g.Index(col, row)] }

// Set stores v at pixel (col, row).
func (g *GridF) Set(col, row int, v float64) { g.Data[g.Index(col, row)] = v }

// AddAt accumulates v into pixel (col, row).
func (g *GridF) AddAt(col, row int, v float64) { g.Data[g.Index(col, row)] += v }

// PixelCenter returns the physical coordinate of pixel (col, row)'s center.
func (g GridF) PixelCenter(col, row int) (x, y float64) {
	return g.X + (float64(col)+0.5)*g.XRes(), g.Y + (float64(row)+0.5)*g.YRes()
}

// SameShape reports whether o has identical bounds and pixel counts.
func (g GridF) SameShape(o GridF) bool {
	return g.Cols == o.Cols && g.Rows == o.Rows &&
		g.X == o.X && g.Y == o.Y && g.Width == o.Width && g.Height == o.Height
}

// Add accumulates o into g element-wise. The grids must have identical
// bounds and dimensions.
func (g *GridF) Add(o GridF) error {
	if !g.SameShape(o) {
		return fmt.Errorf("%w: grid add with mismatched shape %dx%d vs %dx%d",
			errs.ErrInvalidOperation, g.Cols, g.Rows, o.Cols, o.Rows)
	}

	for i, v := range o.Data {
		g.Data[i] += v
	}

	return nil
}

// Max returns the largest value in the grid (zero for an empty grid).
func (g GridF) Max() float64 {
	m := 0.0
	for i, v := range g.Data {
		if i == 0 || v > m {
			m = v
		}
	}

	return m
}

// Clone returns a deep copy of the grid.
func (g GridF) Clone() GridF {
	out := g
	out.Data = make([]float64, len(g.Data))
	copy(out.Data, g.Data)

	return out
}
