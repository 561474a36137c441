package values

import (
	"fmt"

	"github.com/parquet-go/parquet-go/encoding/bitpacked"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

// MaxAlignedBitWidth is the widest value the aligned bit-packing writer supports.
const MaxAlignedBitWidth = 8

// MaxUnalignedBitWidth is the widest value the unaligned bit-packing writer supports.
const MaxUnalignedBitWidth = 32

// BitPackingWriter writes the deprecated BIT_PACKED encoding for values of at most
// 8 bits, most significant bit first, with no run headers. Pages are encoded by
// parquet-go's bitpacked encoding.
//
// The bit width is the number of bits needed to represent bound.
type BitPackingWriter struct {
	encoding.NotSupported
	bound  int
	enc    bitpacked.Encoding
	values []uint8
	page   pageBuffer
	sealed bool
}

var _ encoding.ValuesWriter = (*BitPackingWriter)(nil)

// NewBitPackingWriter creates an aligned bit-packing writer for values in [0, bound].
//
// Parameters:
//   - bound: Largest value the column holds; it fixes the bit width
//   - props: Write-session properties
//
// Returns:
//   - *BitPackingWriter: The writer
//   - error: errs.ErrInvalidConfiguration if bound is negative or needs more than 8 bits
func NewBitPackingWriter(bound int, props encoding.Properties) (*BitPackingWriter, error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: bit-packing bound must not be negative, got %d", errs.ErrInvalidConfiguration, bound)
	}
	width := WidthFromBound(bound)
	if width > MaxAlignedBitWidth {
		return nil, fmt.Errorf("%w: aligned bit-packing supports at most %d bits, bound %d needs %d",
			errs.ErrInvalidConfiguration, MaxAlignedBitWidth, bound, width)
	}

	return &BitPackingWriter{
		NotSupported: encoding.NotSupported{Name: "bit-packing"},
		bound:        bound,
		enc:          bitpacked.Encoding{BitWidth: width},
		page:         newPageBuffer(props),
	}, nil
}

// BitWidth returns the bit width derived from the bound.
func (w *BitPackingWriter) BitWidth() int { return w.enc.BitWidth }

// Bound returns the largest value the writer accepts by construction.
func (w *BitPackingWriter) Bound() int { return w.bound }

// WriteInt32 appends v to the page.
//
// Returns:
//   - error: errs.ErrValueOutOfRange if v is negative or does not fit the bit width
func (w *BitPackingWriter) WriteInt32(v int32) error {
	if w.page.finished() {
		return errFinished(w.Name)
	}
	if w.sealed {
		return errSealed(w.Name)
	}
	if v < 0 || uint64(v) > maxForWidth(w.enc.BitWidth) {
		return fmt.Errorf("%w: %d does not fit %d bits", errs.ErrValueOutOfRange, v, w.enc.BitWidth)
	}
	w.values = append(w.values, uint8(v))

	return nil
}

// BufferedSize returns the packed size of the buffered values.
func (w *BitPackingWriter) BufferedSize() int {
	return (len(w.values)*w.enc.BitWidth + 7) / 8
}

func (w *BitPackingWriter) AllocatedSize() int { return cap(w.values) + w.page.cap() }

func (w *BitPackingWriter) Bytes() ([]byte, error) {
	if w.page.finished() {
		return nil, errFinished(w.Name)
	}
	if !w.sealed {
		data, err := w.enc.EncodeLevels(w.page.buf.B[:0], w.values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w.Name, err)
		}
		w.page.buf.B = data
		w.sealed = true
	}

	return w.page.buf.Bytes(), nil
}

func (w *BitPackingWriter) Encoding() format.EncodingType { return format.BitPacked }

func (w *BitPackingWriter) Reset() {
	w.values = w.values[:0]
	w.page.reset()
	w.sealed = false
}

func (w *BitPackingWriter) DictionaryPage() (*encoding.DictionaryPage, error) { return nil, nil }

func (w *BitPackingWriter) Finish() {
	w.page.release()
	w.values = nil
}

// ByteBitPackingWriter writes the BIT_PACKED encoding for widths up to 32 bits.
// Values are packed in groups of 8, so every group occupies exactly bitWidth bytes;
// a trailing partial group is padded with zeros.
//
// parquet-go only packs BIT_PACKED levels of up to 8 bits, so wider values are
// packed here.
//
// With BigEndian order and widths of at most 8 bits its output is identical to
// BitPackingWriter.
type ByteBitPackingWriter struct {
	encoding.NotSupported
	bound  int
	width  int
	order  encoding.BitOrder
	page   pageBuffer
	group  [8]uint64
	n      int
	sealed bool
}

var _ encoding.ValuesWriter = (*ByteBitPackingWriter)(nil)

// NewByteBitPackingWriter creates an unaligned bit-packing writer for values in
// [0, bound] using the given bit order.
//
// Parameters:
//   - bound: Largest value the column holds; it fixes the bit width
//   - order: encoding.BigEndian for BIT_PACKED, encoding.LittleEndian for RLE-style packing
//   - props: Write-session properties
//
// Returns:
//   - *ByteBitPackingWriter: The writer
//   - error: errs.ErrInvalidConfiguration if bound is negative, needs more than 32
//     bits, or order is unknown
func NewByteBitPackingWriter(bound int, order encoding.BitOrder, props encoding.Properties) (*ByteBitPackingWriter, error) {
	if bound < 0 {
		return nil, fmt.Errorf("%w: bit-packing bound must not be negative, got %d", errs.ErrInvalidConfiguration, bound)
	}
	width := WidthFromBound(bound)
	if width > MaxUnalignedBitWidth {
		return nil, fmt.Errorf("%w: bit-packing supports at most %d bits, bound %d needs %d",
			errs.ErrInvalidConfiguration, MaxUnalignedBitWidth, bound, width)
	}
	if order != encoding.BigEndian && order != encoding.LittleEndian {
		return nil, fmt.Errorf("%w: unknown bit order %d", errs.ErrInvalidConfiguration, order)
	}

	return &ByteBitPackingWriter{
		NotSupported: encoding.NotSupported{Name: "byte bit-packing"},
		bound:        bound,
		width:        width,
		order:        order,
		page:         newPageBuffer(props),
	}, nil
}

// BitWidth returns the bit width derived from the bound.
func (w *ByteBitPackingWriter) BitWidth() int { return w.width }

// Bound returns the largest value the writer accepts by construction.
func (w *ByteBitPackingWriter) Bound() int { return w.bound }

// Order returns the configured bit order.
func (w *ByteBitPackingWriter) Order() encoding.BitOrder { return w.order }

func (w *ByteBitPackingWriter) WriteInt32(v int32) error {
	if w.page.finished() {
		return errFinished(w.Name)
	}
	if w.sealed {
		return errSealed(w.Name)
	}
	if v < 0 || uint64(v) > maxForWidth(w.width) {
		return fmt.Errorf("%w: %d does not fit %d bits", errs.ErrValueOutOfRange, v, w.width)
	}
	w.group[w.n] = uint64(v)
	w.n++
	if w.n == len(w.group) {
		w.packGroup()
	}

	return nil
}

func (w *ByteBitPackingWriter) packGroup() {
	w.page.buf.Grow(w.width)
	if w.order == encoding.BigEndian {
		w.page.buf.B = appendPackedMSB(w.page.buf.B, w.group[:], w.width)
	} else {
		w.page.buf.B = appendPackedLSB(w.page.buf.B, w.group[:], w.width)
	}
	w.n = 0
}

// BufferedSize includes the bytes the pending partial group will occupy.
func (w *ByteBitPackingWriter) BufferedSize() int {
	if w.n > 0 {
		return w.page.len() + w.width
	}

	return w.page.len()
}

func (w *ByteBitPackingWriter) AllocatedSize() int { return w.page.cap() }

func (w *ByteBitPackingWriter) Bytes() ([]byte, error) {
	if w.page.finished() {
		return nil, errFinished(w.Name)
	}
	if !w.sealed {
		if w.n > 0 {
			clear(w.group[w.n:])
			w.packGroup()
		}
		w.sealed = true
	}

	return w.page.buf.Bytes(), nil
}

func (w *ByteBitPackingWriter) Encoding() format.EncodingType { return format.BitPacked }

func (w *ByteBitPackingWriter) Reset() {
	w.page.reset()
	w.n = 0
	w.sealed = false
}

func (w *ByteBitPackingWriter) DictionaryPage() (*encoding.DictionaryPage, error) { return nil, nil }

func (w *ByteBitPackingWriter) Finish() { w.page.release() }
