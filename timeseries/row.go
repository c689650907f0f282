package timeseries

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

// ScalarRecord is one snapshot's expected/actual pair for a scalar axis,
// plus its scale-aware error.
type ScalarRecord struct {
	Axis     format.AxisKind
	Scale    format.Scale
	Expected float64
	Actual   float64
}

// Error returns the scale-aware difference Expected -> Actual, using the
// shortest-arc normalization for rotational axes.
func (r ScalarRecord) Error() float64 {
	return Delta(r.Scale, r.Expected, r.Scale, r.Actual, r.Axis)
}

// WithScale converts both Expected and Actual to target, returning a new
// record expressed in that scale.
func (r ScalarRecord) WithScale(target format.Scale) ScalarRecord {
	if target == r.Scale {
		return r
	}

	return ScalarRecord{
		Axis:     r.Axis,
		Scale:    target,
		Expected: Convert(r.Scale, target, r.Axis, r.Expected),
		Actual:   Convert(r.Scale, target, r.Axis, r.Actual),
	}
}

// MLCSnapshot is one snapshot's carriage and per-leaf-pair positions.
type MLCSnapshot struct {
	axis      AxisData
	leafPairs int
	row       int
}

// LeafPairs returns the number of leaf pairs per bank.
func (m MLCSnapshot) LeafPairs() int { return m.leafPairs }

func (m MLCSnapshot) ExpectedCarriage(which int) float64 {
	return m.axis.ExpectedCarriage(m.row, which)
}

func (m MLCSnapshot) ActualCarriage(which int) float64 {
	return m.axis.ActualCarriage(m.row, which)
}

func (m MLCSnapshot) ExpectedLeaf(bank, leaf int) float64 {
	return m.axis.ExpectedLeaf(m.row, m.leafPairs, bank, leaf)
}

func (m MLCSnapshot) ActualLeaf(bank, leaf int) float64 {
	return m.axis.ActualLeaf(m.row, m.leafPairs, bank, leaf)
}

// Snapshot is a lazy row view bound to a Store and a snapshot index. It
// borrows the store; it does not own or cache anything.
type Snapshot struct {
	store *Store
	index int
}

// Index returns the snapshot's position in the log.
func (s Snapshot) Index() int { return s.index }

// Scalar returns the ScalarRecord for kind. Requesting the MLC axis here is
// an invalid operation: use MLC instead.
func (s Snapshot) Scalar(kind format.AxisKind) (ScalarRecord, error) {
	if kind == format.AxisMLC {
		return ScalarRecord{}, fmt.Errorf("%w: ScalarRecord is not defined for the MLC axis", errs.ErrInvalidOperation)
	}

	col, err := s.store.Column(kind)
	if err != nil {
		return ScalarRecord{}, err
	}

	return ScalarRecord{
		Axis:     kind,
		Scale:    s.store.AxisScale,
		Expected: col.Expected(s.index),
		Actual:   col.Actual(s.index),
	}, nil
}

// MLC returns the MLCSnapshot for this row.
func (s Snapshot) MLC() (MLCSnapshot, error) {
	axis, err := s.store.Axis(format.AxisMLC)
	if err != nil {
		return MLCSnapshot{}, err
	}

	return MLCSnapshot{axis: axis, leafPairs: s.store.MlcModel.LeafPairCount(), row: s.index}, nil
}

// JawsX returns the total X-field width (X1.Actual + X2.Actual) and its
// expected counterpart, the two jaw axes summed.
func (s Snapshot) JawsX() (expected, actual float64, err error) {
	return s.jawSum(format.AxisX1, format.AxisX2)
}

// JawsY returns the total Y-field width (Y1.Actual + Y2.Actual).
func (s Snapshot) JawsY() (expected, actual float64, err error) {
	return s.jawSum(format.AxisY1, format.AxisY2)
}

func (s Snapshot) jawSum(a, b format.AxisKind) (expected, actual float64, err error) {
	ra, err := s.Scalar(a)
	if err != nil {
		return 0, 0, err
	}

	rb, err := s.Scalar(b)
	if err != nil {
		return 0, 0, err
	}

	return ra.Expected + rb.Expected, ra.Actual + rb.Actual, nil
}
