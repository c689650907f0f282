// Package gamma implements the 2-D gamma-index comparison between two dose
// or fluence grids: a supersampled reference lattice, a precomputed search
// offset table, and per-pixel minimization of the combined dose-difference /
// distance-to-agreement metric.
package gamma

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/internal/options"
)

// Unevaluated is the sentinel stored in the gamma map for pixels excluded by
// the low-dose threshold or lacking any in-range reference sample.
const Unevaluated = -1.0

// Result2D is the outcome of one comparison: the pass fraction over
// evaluated pixels and the per-pixel gamma map.
type Result2D struct {
	Params    Parameters2D
	FracPass  float64
	GammaMap  fluence.GridF
	Evaluated int
	Passed    int
}

// Median returns the median gamma over evaluated pixels, excluding the
// Unevaluated sentinel. NaN when nothing was evaluated.
func (r Result2D) Median() float64 {
	vals := make([]float64, 0, len(r.GammaMap.Data))
	for _, v := range r.GammaMap.Data {
		if v >= 0 {
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return math.NaN()
	}

	sort.Float64s(vals)

	return stat.Quantile(0.5, stat.Empirical, vals, nil)
}

// resampled is the supersampled reference lattice, aligned so that compared
// pixel (xi, yi) maps exactly onto lattice point (xi*mx, yi*my).
type resampled struct {
	cols, rows int
	mx, my     int
	data       []float64 // NaN where outside the reference grid
}

func (r resampled) at(x, y int) (float64, bool) {
	if x < 0 || x >= r.cols || y < 0 || y >= r.rows {
		return 0, false
	}

	v := r.data[y*r.cols+x]
	if math.IsNaN(v) {
		return 0, false
	}

	return v, true
}

// resampleReference builds the supersampled reference lattice: mx/my
// subdivide the compared grid's pixel pitch so the lattice lands exactly on
// compared pixel centers, and each lattice point is filled by bilinear
// interpolation of the reference grid.
func resampleReference(reference, compared fluence.GridF, searchRes float64) resampled {
	mx := int(math.Ceil(compared.XRes() / searchRes))
	my := int(math.Ceil(compared.YRes() / searchRes))
	if mx < 1 {
		mx = 1
	}
	if my < 1 {
		my = 1
	}

	cols := (compared.Cols-1)*mx + 1
	rows := (compared.Rows-1)*my + 1

	xsRes := compared.XRes() / float64(mx)
	ysRes := compared.YRes() / float64(my)

	x0, y0 := compared.PixelCenter(0, 0)

	data := make([]float64, cols*rows)
	for j := 0; j < rows; j++ {
		y := y0 + float64(j)*ysRes
		for i := 0; i < cols; i++ {
			x := x0 + float64(i)*xsRes
			data[j*cols+i] = bilinear(reference, x, y)
		}
	}

	return resampled{cols: cols, rows: rows, mx: mx, my: my, data: data}
}

// bilinear interpolates the reference grid at a physical coordinate,
// returning NaN outside the grid's bounds.
func bilinear(g fluence.GridF, x, y float64) float64 {
	if x < g.X || x > g.X+g.Width || y < g.Y || y > g.Y+g.Height {
		return math.NaN()
	}

	u := (x-g.X)/g.XRes() - 0.5
	v := (y-g.Y)/g.YRes() - 0.5

	c0 := clampInt(int(math.Floor(u)), 0, g.Cols-1)
	r0 := clampInt(int(math.Floor(v)), 0, g.Rows-1)
	c1 := clampInt(c0+1, 0, g.Cols-1)
	r1 := clampInt(r0+1, 0, g.Rows-1)

	fu := clamp01(u - float64(c0))
	fv := clamp01(v - float64(r0))

	top := g.At(c0, r0)*(1-fu) + g.At(c1, r0)*fu
	bot := g.At(c0, r1)*(1-fu) + g.At(c1, r1)*fu

	return top*(1-fv) + bot*fv
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

// Compare evaluates the gamma index of compared against reference using
// DefaultParameters(dtaTolMm, doseTolPercent) adjusted by opts.
func Compare(reference, compared fluence.GridF, dtaTolMm, doseTolPercent float64, opts ...Option) (*Result2D, error) {
	p := DefaultParameters(dtaTolMm, doseTolPercent)
	if err := options.Apply(&p, opts...); err != nil {
		return nil, err
	}

	return Evaluate(reference, compared, p)
}

// Evaluate runs the gamma comparison with explicit parameters.
func Evaluate(reference, compared fluence.GridF, params Parameters2D) (*Result2D, error) {
	p, err := params.normalize()
	if err != nil {
		return nil, err
	}

	searchRes := p.DtaTolMm / float64(p.SamplingRate)
	ss := resampleReference(reference, compared, searchRes)

	xsRes := compared.XRes() / float64(ss.mx)
	ysRes := compared.YRes() / float64(ss.my)
	offsets := searchOffsets(p.DtaTolMm, p.SamplingRate, xsRes, ysRes)

	comparedMax := compared.Max()
	threshold := p.ThresholdPercent / 100 * comparedMax
	dtaSq := p.DtaTolMm * p.DtaTolMm
	doseTolSq := p.DoseTolPercent * p.DoseTolPercent

	gammaMap := fluence.NewGridF(compared.X, compared.Y, compared.Width, compared.Height, compared.Cols, compared.Rows)
	for i := range gammaMap.Data {
		gammaMap.Data[i] = Unevaluated
	}

	evaluated, passed := 0, 0

	for yi := 0; yi < compared.Rows; yi++ {
		for xi := 0; xi < compared.Cols; xi++ {
			dc := compared.At(xi, yi)
			if dc < threshold {
				continue
			}

			minGammaSq := math.Inf(1)
			for _, off := range offsets {
				distTerm := off.DistSq / dtaSq
				if distTerm >= minGammaSq {
					break // offsets are distance-sorted
				}

				dr, ok := ss.at(xi*ss.mx+off.Dx, yi*ss.my+off.Dy)
				if !ok {
					continue
				}

				norm := comparedMax
				if !p.Global {
					norm = dr
				}
				if norm == 0 {
					continue
				}

				dosePct := 100 * (dc - dr) / norm
				gammaSq := dosePct*dosePct/doseTolSq + distTerm
				if gammaSq < minGammaSq {
					minGammaSq = gammaSq
				}
			}

			if math.IsInf(minGammaSq, 1) {
				continue
			}

			g := math.Sqrt(minGammaSq)
			gammaMap.Set(xi, yi, g)

			evaluated++
			if g <= 1 {
				passed++
			}
		}
	}

	fracPass := 0.0
	if evaluated > 0 {
		fracPass = float64(passed) / float64(evaluated)
	}

	return &Result2D{
		Params:    p,
		FracPass:  fracPass,
		GammaMap:  gammaMap,
		Evaluated: evaluated,
		Passed:    passed,
	}, nil
}
