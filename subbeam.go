package trajlog

import (
	"fmt"

	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/timeseries"
)

// SubBeam is one planned delivery segment of the log: its starting control
// point, delivered MU, expected radiation time, sequence number, and name.
// Snapshot ranges are derived lazily from the ControlPoint axis.
type SubBeam struct {
	ControlPoint   int32
	MU             float32
	RadTime        float32
	SequenceNumber int32
	Name           string
}

// subBeamRange is one sub-beam's derived snapshot interval.
type subBeamRange struct {
	start, end int
	started    bool
}

// deriveRanges scans the ControlPoint axis once for every sub-beam: the
// start is the first snapshot whose control point reaches the sub-beam's
// threshold; the end is the next sub-beam's start minus one, or the last
// snapshot. A sub-beam whose threshold is never reached is flagged as not
// started.
func (l *TrajectoryLog) deriveRanges() ([]subBeamRange, error) {
	if l.ranges != nil {
		return l.ranges, nil
	}

	cp, err := l.Store.Column(format.AxisControlPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: sub-beam ranges need the ControlPoint axis", errs.ErrInvalidOperation)
	}

	n := l.NumSnapshots()
	ranges := make([]subBeamRange, len(l.SubBeams))

	cursor := 0
	for i, sb := range l.SubBeams {
		threshold := float64(sb.ControlPoint)

		start := -1
		for snap := cursor; snap < n; snap++ {
			if cp.Actual(snap) >= threshold {
				start = snap
				break
			}
		}

		if start < 0 {
			ranges[i] = subBeamRange{started: false}
			continue
		}

		ranges[i] = subBeamRange{start: start, end: n - 1, started: true}
		if i > 0 && ranges[i-1].started {
			ranges[i-1].end = start - 1
		}

		cursor = start
	}

	l.ranges = ranges

	return ranges, nil
}

// SubBeamRange returns sub-beam i's snapshot interval [start, end] and
// whether the sub-beam's start was ever reached in the recording.
func (l *TrajectoryLog) SubBeamRange(i int) (start, end int, started bool, err error) {
	if i < 0 || i >= len(l.SubBeams) {
		return 0, 0, false, fmt.Errorf("%w: sub-beam index %d of %d", errs.ErrOutOfRange, i, len(l.SubBeams))
	}

	ranges, err := l.deriveRanges()
	if err != nil {
		return 0, 0, false, err
	}

	r := ranges[i]

	return r.start, r.end, r.started, nil
}

// SubBeamSnapshots returns the slice of snapshot views covered by sub-beam
// i, empty when the sub-beam never started.
func (l *TrajectoryLog) SubBeamSnapshots(i int) ([]timeseries.Snapshot, error) {
	start, end, started, err := l.SubBeamRange(i)
	if err != nil {
		return nil, err
	}

	if !started || end < start {
		return nil, nil
	}

	snaps := make([]timeseries.Snapshot, 0, end-start+1)
	for snap := start; snap <= end; snap++ {
		row, err := l.Store.Row(snap)
		if err != nil {
			return nil, err
		}

		snaps = append(snaps, row)
	}

	return snaps, nil
}
