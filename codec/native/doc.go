// Package native implements the native trajectory-log codec: the
// 1024-byte VOSTL header, sub-beam records, and the float32 axis payload.
//
// On disk, axis samples are interleaved snapshot-major then axis-major then
// sample-major; in memory (timeseries.AxisData) each axis owns its own
// stride-major contiguous buffer. Read and Write transpose between the two
// layouts; this is the only place in the module that does so.
package native
