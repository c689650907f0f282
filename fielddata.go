package trajlog

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/fluence"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/mlc"
	"github.com/clarityrt/trajlog/timeseries"
)

// cmToMm converts the log's centimeter positions (jaws, leaves) to the
// millimeter-at-isocenter convention the fluence engine expects.
const cmToMm = 10.0

// logField is one snapshot projected into the fluence engine's field-data
// shape: signed IEC jaw edges and leaf positions in mm, angles in degrees,
// and the MU delivered since the previous snapshot.
type logField struct {
	jaws         fluence.Jaws
	gantry, coll float64
	bankA, bankB []float64
	deltaMU      float64
	hold         bool
	model        mlc.Model
}

func (f logField) Jaws() fluence.Jaws         { return f.jaws }
func (f logField) GantryAngle() float64       { return f.gantry }
func (f logField) CollimatorAngle() float64   { return f.coll }
func (f logField) DeltaMU() float64           { return f.deltaMU }
func (f logField) InBeamHold() bool           { return f.hold }
func (f logField) Model() mlc.Model           { return f.model }
func (f logField) LeafPair(i int) (a, b float64) {
	return f.bankA[i], f.bankB[i]
}

// Fields projects every snapshot of the log into a fluence.FieldData
// sequence. It requires the jaw, MLC, MU, collimator, and gantry axes; the
// beam-hold axis is used when sampled and defaults to "not held" otherwise.
func (l *TrajectoryLog) Fields() ([]fluence.FieldData, error) {
	required := []format.AxisKind{
		format.AxisX1, format.AxisX2, format.AxisY1, format.AxisY2,
		format.AxisMU, format.AxisCollRtn, format.AxisGantryRtn,
	}

	cols := make(map[format.AxisKind]timeseries.ColumnView, len(required))
	for _, kind := range required {
		col, err := l.Store.Column(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: fluence projection needs axis %s", errs.ErrInvalidOperation, kind)
		}

		cols[kind] = col
	}

	mlcAxis, err := l.Store.Axis(format.AxisMLC)
	if err != nil {
		return nil, fmt.Errorf("%w: fluence projection needs the MLC axis", errs.ErrInvalidOperation)
	}

	var holdCol *timeseries.ColumnView
	if l.Store.HasAxis(format.AxisBeamHold) {
		col, err := l.Store.Column(format.AxisBeamHold)
		if err != nil {
			return nil, err
		}

		holdCol = &col
	}

	scale := l.Header.AxisScale
	model := mlc.ModelFor(l.Header.MlcModel)
	leafPairs := model.LeafPairs()
	n := l.NumSnapshots()

	fields := make([]fluence.FieldData, n)
	prevMU := 0.0

	for snap := 0; snap < n; snap++ {
		f := logField{model: model}

		f.jaws = fluence.Jaws{
			X1: timeseries.ToIec(scale, format.AxisX1, cols[format.AxisX1].Actual(snap)) * cmToMm,
			X2: cols[format.AxisX2].Actual(snap) * cmToMm,
			Y1: -cols[format.AxisY1].Actual(snap) * cmToMm,
			Y2: cols[format.AxisY2].Actual(snap) * cmToMm,
		}

		f.gantry = timeseries.ToIec(scale, format.AxisGantryRtn, cols[format.AxisGantryRtn].Actual(snap))
		f.coll = timeseries.ToIec(scale, format.AxisCollRtn, cols[format.AxisCollRtn].Actual(snap))

		f.bankA = make([]float64, leafPairs)
		f.bankB = make([]float64, leafPairs)
		for leaf := 0; leaf < leafPairs; leaf++ {
			f.bankA[leaf] = timeseries.LeafToIec(0, mlcAxis.ActualLeaf(snap, leafPairs, 0, leaf)) * cmToMm
			f.bankB[leaf] = timeseries.LeafToIec(1, mlcAxis.ActualLeaf(snap, leafPairs, 1, leaf)) * cmToMm
		}

		mu := cols[format.AxisMU].Actual(snap)
		f.deltaMU = mu - prevMU
		prevMU = mu

		if holdCol != nil {
			f.hold = holdCol.Actual(snap) > 0
		}

		fields[snap] = f
	}

	return fields, nil
}

// SubBeamFields projects only sub-beam i's snapshot range.
func (l *TrajectoryLog) SubBeamFields(i int) ([]fluence.FieldData, error) {
	start, end, started, err := l.SubBeamRange(i)
	if err != nil {
		return nil, err
	}

	if !started || end < start {
		return nil, nil
	}

	all, err := l.Fields()
	if err != nil {
		return nil, err
	}

	return all[start : end+1], nil
}
