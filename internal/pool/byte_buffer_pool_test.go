package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(PageBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, bb.WriteByte(' '))
	bb.MustWrite([]byte("world"))

	assert.Equal(t, []byte("hello world"), bb.Bytes())
	assert.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(128)
	bb.Grow(64)

	assert.Equal(t, 128, bb.Cap(), "no growth expected when capacity suffices")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("12345678"))
	bb.Grow(1)

	assert.Equal(t, 8+PageBufferDefaultSize, bb.Cap())
	assert.Equal(t, []byte("12345678"), bb.Bytes(), "grow must preserve data")
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	size := 8 * PageBufferDefaultSize
	bb := NewByteBuffer(size)
	bb.B = bb.B[:size]
	bb.Grow(1)

	assert.Equal(t, size+size/4, bb.Cap())
}

func TestByteBuffer_Grow_MoreThanDefaultGrowth(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(3 * PageBufferDefaultSize)

	assert.GreaterOrEqual(t, bb.Cap(), 3*PageBufferDefaultSize)
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(256, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, bb.Cap(), 256)

	bb.MustWrite([]byte("data"))
	p.Put(bb)
	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")

	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := NewByteBuffer(128)
	bb.MustWrite([]byte("oversized"))
	p.Put(bb)

	assert.Equal(t, 9, bb.Len(), "oversized buffers are dropped without reset")
}

// =============================================================================
// Allocator Tests
// =============================================================================

func TestAllocator_Allocate(t *testing.T) {
	a := NewAllocator(64, 4096)

	b := a.Allocate(1000)
	assert.Equal(t, 0, len(b))
	assert.GreaterOrEqual(t, cap(b), 1000)

	b = append(b, "payload"...)
	a.Release(b)

	again := a.Allocate(10)
	assert.Equal(t, 0, len(again), "allocated slices are always empty")

	assert.NotPanics(t, func() { a.Release(nil) })
}

func TestDefaultAllocators(t *testing.T) {
	require.NotNil(t, PageAllocator())
	require.NotNil(t, DictAllocator())
	assert.NotSame(t, PageAllocator(), DictAllocator())

	b := PageAllocator().Allocate(0)
	assert.GreaterOrEqual(t, cap(b), PageBufferDefaultSize)
	PageAllocator().Release(b)
}

func TestAllocator_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	a := NewAllocator(128, 1024)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				b := a.Allocate(32)
				b = append(b, "data"...)
				assert.Equal(t, 4, len(b))
				a.Release(b)
			}
		}()
	}

	wg.Wait()
}
