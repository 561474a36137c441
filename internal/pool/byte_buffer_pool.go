package pool

import (
	"sync"
)

// Page buffer sizing defaults.
const (
	PageBufferDefaultSize  = 1024 * 64       // 64KiB
	PageBufferMaxThreshold = 1024 * 1024 * 2 // 2MiB
	DictBufferDefaultSize  = 1024 * 16       // 16KiB
	DictBufferMaxThreshold = 1024 * 1024 * 2 // 2MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
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

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
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

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<256KB), grow by PageBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PageBufferDefaultSize
	if cap(bb.B) > 4*PageBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
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
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

// Allocator hands out empty byte slices backed by a ByteBufferPool.
//
// It satisfies encoding.Allocator and is safe for concurrent use.
type Allocator struct {
	pool *ByteBufferPool
}

// NewAllocator creates an allocator over a pool with the given sizing.
func NewAllocator(defaultSize, maxThreshold int) *Allocator {
	return &Allocator{pool: NewByteBufferPool(defaultSize, maxThreshold)}
}

// Allocate returns an empty slice with at least capacity bytes of room.
func (a *Allocator) Allocate(capacity int) []byte {
	bb := a.pool.Get()
	bb.Grow(capacity)

	return bb.B[:0]
}

// Release returns a slice obtained from Allocate to the pool.
// The caller must not use b afterwards.
func (a *Allocator) Release(b []byte) {
	if b == nil {
		return
	}
	a.pool.Put(&ByteBuffer{B: b})
}

var (
	pageDefaultAllocator = NewAllocator(PageBufferDefaultSize, PageBufferMaxThreshold)
	dictDefaultAllocator = NewAllocator(DictBufferDefaultSize, DictBufferMaxThreshold)
)

// PageAllocator returns the shared allocator used for data page buffers.
func PageAllocator() *Allocator {
	return pageDefaultAllocator
}

// DictAllocator returns the shared allocator used for dictionary buffers.
func DictAllocator() *Allocator {
	return dictDefaultAllocator
}
