package values

import (
	"fmt"
	"math"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/internal/pool"
)

// pageBuffer is a page-sized output buffer obtained from the session allocator.
type pageBuffer struct {
	alloc encoding.Allocator
	buf   *pool.ByteBuffer
}

func newPageBuffer(props encoding.Properties) pageBuffer {
	props = props.WithDefaults()

	return pageBuffer{
		alloc: props.Allocator,
		buf:   &pool.ByteBuffer{B: props.Allocator.Allocate(props.InitialSlabSize)},
	}
}

func (p *pageBuffer) finished() bool {
	return p.buf == nil
}

func (p *pageBuffer) len() int {
	if p.buf == nil {
		return 0
	}

	return p.buf.Len()
}

func (p *pageBuffer) cap() int {
	if p.buf == nil {
		return 0
	}

	return p.buf.Cap()
}

func (p *pageBuffer) reset() {
	if p.buf != nil {
		p.buf.Reset()
	}
}

func (p *pageBuffer) release() {
	if p.buf == nil {
		return
	}
	p.alloc.Release(p.buf.B)
	p.buf = nil
}

// valueKind names the typed slice a valueBuffer holds.
type valueKind uint8

const (
	kindNone valueKind = iota
	kindInt32
	kindInt64
	kindFloat
	kindDouble
	kindBytes
)

func (k valueKind) String() string {
	switch k {
	case kindInt32:
		return "int32"
	case kindInt64:
		return "int64"
	case kindFloat:
		return "float"
	case kindDouble:
		return "double"
	case kindBytes:
		return "byte array"
	default:
		return "none"
	}
}

// valueBuffer collects the values of one page in the typed form the parquet-go
// encodings take. A buffer holds a single kind until it is reset.
//
// Byte values are concatenated in data; offsets has one more element than there are
// values, so value i is data[offsets[i]:offsets[i+1]].
type valueBuffer struct {
	kind    valueKind
	int32s  []int32
	int64s  []int64
	floats  []float32
	doubles []float64
	data    []byte
	offsets []uint32
}

// use locks the buffer to kind. It fails when the buffer already holds another kind.
func (b *valueBuffer) use(kind valueKind) error {
	if b.kind == kind {
		return nil
	}
	if b.kind != kindNone {
		return fmt.Errorf("%w: page holds %s values, cannot add %s", errs.ErrUnsupportedValue, b.kind, kind)
	}
	b.kind = kind
	if kind == kindBytes {
		b.offsets = append(b.offsets[:0], 0)
	}

	return nil
}

func (b *valueBuffer) appendBytes(v []byte) error {
	if uint64(len(b.data))+uint64(len(v)) > math.MaxUint32 {
		return fmt.Errorf("%w: page byte values exceed %d bytes", errs.ErrInvalidValueLength, uint64(math.MaxUint32))
	}
	b.data = append(b.data, v...)
	b.offsets = append(b.offsets, uint32(len(b.data)))

	return nil
}

// index returns byte value i. The result aliases the buffer.
func (b *valueBuffer) index(i int) []byte {
	j, k := b.offsets[i], b.offsets[i+1]
	return b.data[j:k:k]
}

func (b *valueBuffer) len() int {
	switch b.kind {
	case kindInt32:
		return len(b.int32s)
	case kindInt64:
		return len(b.int64s)
	case kindFloat:
		return len(b.floats)
	case kindDouble:
		return len(b.doubles)
	case kindBytes:
		return len(b.offsets) - 1
	default:
		return 0
	}
}

// plainSize returns the size of the buffered values in PLAIN form.
func (b *valueBuffer) plainSize() int {
	switch b.kind {
	case kindInt32, kindFloat:
		return 4 * b.len()
	case kindInt64, kindDouble:
		return 8 * b.len()
	case kindBytes:
		return len(b.data) + 4*b.len()
	default:
		return 0
	}
}

func (b *valueBuffer) allocated() int {
	return 4*cap(b.int32s) + 8*cap(b.int64s) + 4*cap(b.floats) + 8*cap(b.doubles) +
		cap(b.data) + 4*cap(b.offsets)
}

func (b *valueBuffer) reset() {
	b.kind = kindNone
	b.int32s = b.int32s[:0]
	b.int64s = b.int64s[:0]
	b.floats = b.floats[:0]
	b.doubles = b.doubles[:0]
	b.data = b.data[:0]
	b.offsets = b.offsets[:0]
}

func (b *valueBuffer) free() {
	*b = valueBuffer{}
}

func errFinished(name string) error {
	return fmt.Errorf("%w: %s", errs.ErrWriterFinished, name)
}

func errSealed(name string) error {
	return fmt.Errorf("%w: %s page is finalized, call Reset before writing", errs.ErrPageSealed, name)
}
