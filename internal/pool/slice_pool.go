package pool

import "sync"

// float64SlicePool backs the per-stream scratch buffers the compressed
// writer fills when gathering one axis sample slot across every snapshot.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of exactly the requested length
// from the pool, allocating only when the pooled slice is too small. The
// returned cleanup function must be called (typically with defer) to return
// the slice for reuse; the slice must not be used after that.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}
