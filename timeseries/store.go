package timeseries

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

// Store is the arena that owns every axis's data for one trajectory
// log: a flat slice of AxisData parallel to AxesSampled, plus the
// header fields needed to interpret them (sampling interval, scale
// convention, MLC model). Column and row views borrow a *Store and an
// index; they never copy into or cache on the Store.
type Store struct {
	SamplingIntervalMs int32
	AxisScale          format.Scale
	MlcModel           format.MlcModel
	NumSnapshots       int

	axes    []AxisData
	indexOf map[format.AxisKind]int
}

// NewStore builds a Store from a parallel axis-kind/data-buffer set,
// validating that every scalar axis uses the fixed stride-2 layout and the
// MLC axis (if present) matches the model's leaf-pair count.
func NewStore(samplingIntervalMs int32, scale format.Scale, mlc format.MlcModel, numSnapshots int, axes []AxisData) (*Store, error) {
	idx := make(map[format.AxisKind]int, len(axes))
	for i, a := range axes {
		if a.NumSnapshots() != numSnapshots {
			return nil, fmt.Errorf("%w: axis %s has %d snapshots, header declares %d",
				errs.ErrInvalidOperation, a.Kind, a.NumSnapshots(), numSnapshots)
		}

		if a.Kind == format.AxisMLC {
			want := MLCStride(mlc.LeafPairCount())
			if a.Stride != want {
				return nil, fmt.Errorf("%w: MLC axis stride %d, want %d for %s",
					errs.ErrInvalidOperation, a.Stride, want, mlc)
			}
		} else if a.Stride != scalarStride {
			return nil, fmt.Errorf("%w: axis %s stride %d, want %d",
				errs.ErrInvalidOperation, a.Kind, a.Stride, scalarStride)
		}

		idx[a.Kind] = i
	}

	return &Store{
		SamplingIntervalMs: samplingIntervalMs,
		AxisScale:          scale,
		MlcModel:           mlc,
		NumSnapshots:       numSnapshots,
		axes:               axes,
		indexOf:            idx,
	}, nil
}

// HasAxis reports whether kind was sampled in this log.
func (s *Store) HasAxis(kind format.AxisKind) bool {
	_, ok := s.indexOf[kind]
	return ok
}

// Axis returns the raw AxisData for kind.
func (s *Store) Axis(kind format.AxisKind) (AxisData, error) {
	i, ok := s.indexOf[kind]
	if !ok {
		return AxisData{}, fmt.Errorf("%w: axis %s not sampled", errs.ErrInvalidOperation, kind)
	}

	return s.axes[i], nil
}

// Column returns a lazy ColumnView over kind.
func (s *Store) Column(kind format.AxisKind) (ColumnView, error) {
	a, err := s.Axis(kind)
	if err != nil {
		return ColumnView{}, err
	}

	return ColumnView{axis: a}, nil
}

// Row returns a lazy Snapshot view at index.
func (s *Store) Row(index int) (Snapshot, error) {
	if index < 0 || index >= s.NumSnapshots {
		return Snapshot{}, fmt.Errorf("%w: snapshot index %d out of [0,%d)", errs.ErrOutOfRange, index, s.NumSnapshots)
	}

	return Snapshot{store: s, index: index}, nil
}

// Series returns a lazy Series over kind's actual-value column, suitable
// for GetDelta composition.
func (s *Store) Series(kind format.AxisKind) (Series, error) {
	col, err := s.Column(kind)
	if err != nil {
		return Series{}, err
	}

	return Series{
		Axis:               kind,
		Scale:              s.AxisScale,
		SamplingIntervalMs: s.SamplingIntervalMs,
		Len:                s.NumSnapshots,
		At:                 col.Actual,
	}, nil
}

// JawsXSeries and JawsYSeries return the summed-jaw-width series
// (X1.Actual+X2.Actual, Y1.Actual+Y2.Actual); GetDelta on the result
// yields the field-width velocity.
func (s *Store) JawsXSeries() (Series, error) { return s.jawSumSeries(format.AxisX1, format.AxisX2) }
func (s *Store) JawsYSeries() (Series, error) { return s.jawSumSeries(format.AxisY1, format.AxisY2) }

func (s *Store) jawSumSeries(a, b format.AxisKind) (Series, error) {
	ca, err := s.Column(a)
	if err != nil {
		return Series{}, err
	}

	cb, err := s.Column(b)
	if err != nil {
		return Series{}, err
	}

	return Series{
		Axis:               a,
		Scale:              s.AxisScale,
		SamplingIntervalMs: s.SamplingIntervalMs,
		Len:                s.NumSnapshots,
		At:                 func(i int) float64 { return ca.Actual(i) + cb.Actual(i) },
	}, nil
}
