// Package pool provides reusable byte-buffer and typed-slice pools for the
// codec and time-series hot paths, avoiding per-stream/per-axis allocation
// during encode and decode.
package pool

import (
	"io"
	"sync"
)

// Default and ceiling sizes for the two buffer pools the codecs use:
// a small scratch buffer (the native writer's per-snapshot payload row)
// and one per-log (the compressed reader's whole-file staging buffer).
const (
	StreamBufferDefaultSize  = 1024 * 4   // 4KiB: typical single-stream payload
	StreamBufferMaxThreshold = 1024 * 64  // 64KiB
	LogBufferDefaultSize     = 1024 * 256 // 256KiB: typical whole-log staging read
	LogBufferMaxThreshold    = 1024 * 1024 * 16
)

// ByteBuffer is a growable byte slice with allocation-amortizing growth,
// used instead of bytes.Buffer so it can be reset and returned to a pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but retains its allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without a
// further reallocation. Small buffers grow by a fixed default chunk; larger
// buffers grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := StreamBufferDefaultSize
	if cap(bb.B) > 4*StreamBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// buffers that have grown past maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of ByteBuffers.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	streamPool = NewByteBufferPool(StreamBufferDefaultSize, StreamBufferMaxThreshold)
	logPool    = NewByteBufferPool(LogBufferDefaultSize, LogBufferMaxThreshold)
)

// GetStreamBuffer retrieves a small scratch ByteBuffer from the default
// pool.
func GetStreamBuffer() *ByteBuffer {
	return streamPool.Get()
}

// PutStreamBuffer returns a stream buffer to the default pool.
func PutStreamBuffer(bb *ByteBuffer) {
	streamPool.Put(bb)
}

// GetLogBuffer retrieves a ByteBuffer sized for staging a whole trajectory
// log file (used by the compressed reader's ReadFrom).
func GetLogBuffer() *ByteBuffer {
	return logPool.Get()
}

// PutLogBuffer returns a log-staging buffer to the default pool.
func PutLogBuffer(bb *ByteBuffer) {
	logPool.Put(bb)
}
