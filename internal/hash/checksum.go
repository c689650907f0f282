// Package hash provides the content-checksum primitive used for trajectory
// log integrity verification.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data. It is the fast, non-cryptographic
// content fingerprint behind trajlog.TrajectoryLog.Checksum, used for
// round-trip verification.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
