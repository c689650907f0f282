package gamma

import (
	"math"
	"sort"
	"sync"
)

// offset is one precomputed search displacement on the supersampled
// reference lattice: Dx/Dy in lattice steps and the squared physical
// distance in mm^2.
type offset struct {
	Dx, Dy int
	DistSq float64
}

// offsetKey caches offset tables by the parameter set that determines
// them: tolerance, sampling rate, and compared-grid resolution.
type offsetKey struct {
	dtaTol       float64
	samplingRate int
	xRes, yRes   float64
}

var (
	offsetMu    sync.Mutex
	offsetCache = map[offsetKey][]offset{}
)

// searchOffsets returns every lattice displacement within searchRadius =
// 1.5 x dtaTol of the origin, sorted by squared distance ascending so the
// evaluation loop can stop as soon as the distance term alone exceeds the
// best gamma^2 found.
func searchOffsets(dtaTol float64, samplingRate int, xSearchRes, ySearchRes float64) []offset {
	key := offsetKey{dtaTol: dtaTol, samplingRate: samplingRate, xRes: xSearchRes, yRes: ySearchRes}

	offsetMu.Lock()
	defer offsetMu.Unlock()

	if cached, ok := offsetCache[key]; ok {
		return cached
	}

	radius := 1.5 * dtaTol
	radiusSq := radius * radius

	maxI := int(math.Ceil(radius / xSearchRes))
	maxJ := int(math.Ceil(radius / ySearchRes))

	offsets := make([]offset, 0, (2*maxI+1)*(2*maxJ+1))
	for j := -maxJ; j <= maxJ; j++ {
		for i := -maxI; i <= maxI; i++ {
			dx := float64(i) * xSearchRes
			dy := float64(j) * ySearchRes

			distSq := dx*dx + dy*dy
			if distSq > radiusSq {
				continue
			}

			offsets = append(offsets, offset{Dx: i, Dy: j, DistSq: distSq})
		}
	}

	sort.Slice(offsets, func(a, b int) bool { return offsets[a].DistSq < offsets[b].DistSq })

	offsetCache[key] = offsets

	return offsets
}
