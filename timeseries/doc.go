// Package timeseries implements the trajectory-log time-series model:
// the stride-major AxisData store, lazy column (by-axis) and row (by-snapshot)
// views, the scale converter between the three IEC coordinate conventions,
// and time-difference (velocity/acceleration) composition.
//
// Views are value types that borrow a *Store and an index; they never copy
// or cache into the store. This arena+indices arrangement avoids the
// Snapshot -> Log -> SubBeam -> Log reference cycle an object-oriented
// rendering would otherwise create.
package timeseries
