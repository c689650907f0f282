package timeseries

// ColumnView is a lazy, allocation-free projection over one axis's expected
// and actual values across every snapshot. It borrows the
// underlying AxisData; it is a value type and safe to copy.
type ColumnView struct {
	axis AxisData
}

// Len returns the number of snapshots.
func (c ColumnView) Len() int { return c.axis.NumSnapshots() }

// Expected returns the expected value at snapshot.
func (c ColumnView) Expected(snapshot int) float64 { return c.axis.Expected(snapshot) }

// Actual returns the actual value at snapshot.
func (c ColumnView) Actual(snapshot int) float64 { return c.axis.Actual(snapshot) }
