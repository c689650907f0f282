package pool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/internal/pool"
)

func TestByteBufferGrowAndReset(t *testing.T) {
	bb := pool.NewByteBuffer(16)

	bb.MustWrite([]byte("VOSTL"))
	require.Equal(t, 5, bb.Len())

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte("VOSTL"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Greater(t, bb.Cap(), 0)
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := pool.NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Grow(1024) // past the threshold: Put must drop it
	p.Put(bb)

	fresh := p.Get()
	require.LessOrEqual(t, fresh.Cap(), 1024)
	p.Put(fresh)

	p.Put(nil) // must not panic
}

func TestStreamAndLogBuffers(t *testing.T) {
	sb := pool.GetStreamBuffer()
	sb.MustWrite(make([]byte, 100))
	pool.PutStreamBuffer(sb)

	lb := pool.GetLogBuffer()
	require.GreaterOrEqual(t, lb.Cap(), pool.LogBufferDefaultSize)
	pool.PutLogBuffer(lb)
}

func TestGetFloat64Slice(t *testing.T) {
	s, cleanup := pool.GetFloat64Slice(128)
	require.Len(t, s, 128)

	for i := range s {
		s[i] = float64(i)
	}
	cleanup()

	// A second request may reuse the pooled backing array; only the length
	// contract matters.
	s2, cleanup2 := pool.GetFloat64Slice(64)
	require.Len(t, s2, 64)
	cleanup2()
}
