package timeseries

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

// scalarStride is samplesPerSnapshot for every non-MLC axis: one expected
// value followed by one actual value.
const scalarStride = 2

// AxisData is the stride-major flat buffer for one sampled axis: a
// single []float32 of length NumSnapshots*Stride, addressed row-major as
// snapshot*Stride + offset.
type AxisData struct {
	Kind   format.AxisKind
	Stride int
	Data   []float32
}

// NewAxisData wraps a flat buffer for kind, validating its length against
// numSnapshots*stride.
func NewAxisData(kind format.AxisKind, stride, numSnapshots int, data []float32) (AxisData, error) {
	want := stride * numSnapshots
	if len(data) != want {
		return AxisData{}, fmt.Errorf("%w: axis %s buffer length %d, want %d (stride=%d, snapshots=%d)",
			errs.ErrInvalidOperation, kind, len(data), want, stride, numSnapshots)
	}

	return AxisData{Kind: kind, Stride: stride, Data: data}, nil
}

// NumSnapshots returns the number of rows in the buffer.
func (a AxisData) NumSnapshots() int {
	if a.Stride == 0 {
		return 0
	}

	return len(a.Data) / a.Stride
}

func (a AxisData) at(snapshot, offset int) float64 {
	return float64(a.Data[snapshot*a.Stride+offset])
}

// Expected returns the scalar expected value at snapshot (offset 0). It is
// only meaningful for scalar (non-MLC) axes.
func (a AxisData) Expected(snapshot int) float64 { return a.at(snapshot, 0) }

// Actual returns the scalar actual value at snapshot (offset 1).
func (a AxisData) Actual(snapshot int) float64 { return a.at(snapshot, 1) }

// MLCStride returns the per-snapshot sample count for the MLC axis given a
// model's leaf-pair count: (numLeafPairs*2 + 2) * 2.
func MLCStride(leafPairs int) int {
	return (leafPairs*2 + 2) * 2
}

// CarriageOffset returns the row offset of carriage which (0 or 1),
// expected/actual, within an MLC row. The first four samples of every MLC
// row are the two carriage values.
func CarriageOffset(which int, actual bool) int {
	off := which * 2
	if actual {
		off++
	}

	return off
}

// LeafOffset returns the row offset of leaf position (bank, leaf),
// expected/actual, within an MLC row: 4 + bank*leafPairs*2 + leaf*2 + {0|1}.
func LeafOffset(leafPairs, bank, leaf int, actual bool) int {
	off := 4 + bank*leafPairs*2 + leaf*2
	if actual {
		off++
	}

	return off
}

// ExpectedCarriage/ActualCarriage/ExpectedLeaf/ActualLeaf read the MLC axis
// at the given row directly; they assume a.Kind == format.AxisMLC.
func (a AxisData) ExpectedCarriage(snapshot, which int) float64 {
	return a.at(snapshot, CarriageOffset(which, false))
}

func (a AxisData) ActualCarriage(snapshot, which int) float64 {
	return a.at(snapshot, CarriageOffset(which, true))
}

func (a AxisData) ExpectedLeaf(snapshot, leafPairs, bank, leaf int) float64 {
	return a.at(snapshot, LeafOffset(leafPairs, bank, leaf, false))
}

func (a AxisData) ActualLeaf(snapshot, leafPairs, bank, leaf int) float64 {
	return a.at(snapshot, LeafOffset(leafPairs, bank, leaf, true))
}
