// Package fluence reconstructs the 2-D delivered fluence of a treatment
// field: every snapshot's open leaf apertures, rotated by the collimator
// angle, are rasterized onto a shared pixel grid weighted by the MU
// delivered during that snapshot.
//
// Two rasterization strategies are available. The exact strategy clips each
// aperture polygon against every pixel it touches with Sutherland-Hodgman
// and accumulates the precise intersection area. The approximate strategy
// samples each aperture along row midlines, trading Y-direction accuracy for
// speed on large logs.
//
// The engine is data-parallel: snapshots are partitioned across a bounded
// worker pool, each worker owning a private accumulator grid, and the
// partial grids are summed at the end. Contributions commute, so worker
// order never changes the result beyond float summation order.
package fluence
