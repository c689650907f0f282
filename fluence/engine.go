package fluence

import (
	"math"
	"sync"

	"github.com/clarityrt/trajlog/geometry"
	"github.com/clarityrt/trajlog/internal/options"
)

// minLeafHeight is the smallest clamped leaf Y-extent that still draws;
// shorter apertures are skipped.
const minLeafHeight = 1e-4

// FieldFluence is the reconstruction result: the accumulated MU grid, the
// options that produced it, and the rotated jaw outline of the widest
// configuration seen.
type FieldFluence struct {
	Grid        GridF
	Options     FluenceOptions
	JawOutlines []geometry.Polygon
}

// Reconstruct rasterizes the MU-weighted leaf apertures of every snapshot in
// fields onto a single grid. Snapshots are partitioned across up to
// MaxParallelism workers, each accumulating into a thread-local grid; worker
// grids are reduced into the output by element-wise addition under a single
// lock.
func Reconstruct(fields []FieldData, opts ...Option) (*FieldFluence, error) {
	o := DefaultOptions()
	if err := options.Apply(&o, opts...); err != nil {
		return nil, err
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	bounds, outline := computeExtent(fields, o)
	grid := NewGridF(bounds.MinX, bounds.MinY, bounds.Width(), bounds.Height(), o.Cols, o.Rows)

	workers := o.MaxParallelism
	if workers > len(fields) {
		workers = len(fields)
	}

	if workers <= 1 {
		for _, f := range fields {
			accumulateSnapshot(&grid, f, o)
		}
	} else {
		reduceParallel(&grid, fields, o, workers)
	}

	result := &FieldFluence{Grid: grid, Options: o}
	if outline.Points != nil {
		result.JawOutlines = []geometry.Polygon{outline}
	}

	return result, nil
}

func reduceParallel(grid *GridF, fields []FieldData, o FluenceOptions, workers int) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	chunk := (len(fields) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(fields) {
			hi = len(fields)
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(part []FieldData) {
			defer wg.Done()

			local := NewGridF(grid.X, grid.Y, grid.Width, grid.Height, grid.Cols, grid.Rows)
			for _, f := range part {
				accumulateSnapshot(&local, f, o)
			}

			mu.Lock()
			_ = grid.Add(local) // shapes match by construction
			mu.Unlock()
		}(fields[lo:hi])
	}

	wg.Wait()
}

// accumulateSnapshot draws every open leaf-pair aperture of one snapshot,
// weighted by its delta MU. Snapshots failing a precondition are skipped,
// never an error.
func accumulateSnapshot(g *GridF, f FieldData, o FluenceOptions) {
	dmu := f.DeltaMU()
	if dmu <= o.MinDeltaMu {
		return
	}

	if o.ExcludeBeamHolds && f.InBeamHold() {
		o.Logger.Debugf("fluence: skipping beam-hold snapshot")
		return
	}

	jaws := f.Jaws()
	coll := collimatorAngle(f, o)
	rot := geometry.Rotation(coll)
	model := f.Model()

	xRes, yRes := g.XRes(), g.YRes()

	for i := 0; i < model.LeafPairs(); i++ {
		a, b := f.LeafPair(i)
		a = math.Min(math.Max(a, jaws.X1), jaws.X2)
		b = math.Min(math.Max(b, jaws.X1), jaws.X2)

		width := a - b
		if width <= 0 {
			continue
		}

		leafW := model.Width(i)
		yMin := math.Max(model.CenterY(i)-leafW/2, jaws.Y1)
		yMax := math.Min(model.CenterY(i)+leafW/2, jaws.Y2)

		height := yMax - yMin
		if height < minLeafHeight {
			continue
		}

		center := rot.Apply(geometry.Point{X: (a + b) / 2, Y: (yMin + yMax) / 2})

		rect := geometry.RotatedRect{
			CenterX: center.X, CenterY: center.Y,
			Width: width, Height: height,
			AngleDeg: coll,
		}

		corners := rect.Corners()
		px := make([]geometry.Point, 4)
		for ci, c := range corners {
			px[ci] = geometry.Point{X: (c.X - g.X) / xRes, Y: (c.Y - g.Y) / yRes}
		}

		bounds := rect.Bounds()
		pxBounds := geometry.AABB{
			MinX: (bounds.MinX - g.X) / xRes, MinY: (bounds.MinY - g.Y) / yRes,
			MaxX: (bounds.MaxX - g.X) / xRes, MaxY: (bounds.MaxY - g.Y) / yRes,
		}

		poly := geometry.NewPolygon(px...)
		if o.UseApproximateFluence {
			rasterizeApprox(g, poly, pxBounds, dmu)
		} else {
			rasterizeExact(g, poly, pxBounds, dmu)
		}
	}
}
