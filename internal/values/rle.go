package values

import (
	"encoding/binary"
	"fmt"

	"github.com/parquet-go/parquet-go/encoding/rle"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

// MaxRLEBitWidth is the widest value the RLE writer supports.
const MaxRLEBitWidth = 32

// RLEWriter writes RLE / bit-packing hybrid pages. The run stream produced by
// parquet-go's rle encoding is prefixed with its 4-byte little-endian length.
//
// It accepts int32 values in [0, 2^bitWidth) and booleans, which are written as 0
// or 1.
type RLEWriter struct {
	encoding.NotSupported
	enc      rle.Encoding
	maxValue uint64
	values   []int32
	scratch  []byte
	page     pageBuffer
	sealed   bool
}

var _ encoding.ValuesWriter = (*RLEWriter)(nil)

// NewRLEWriter creates a hybrid writer for values of bitWidth bits.
//
// Parameters:
//   - bitWidth: Bits per value, within [1, 32]; boolean columns use 1
//   - props: Write-session properties
//
// Returns:
//   - *RLEWriter: The writer
//   - error: errs.ErrInvalidConfiguration if bitWidth is out of range
func NewRLEWriter(bitWidth int, props encoding.Properties) (*RLEWriter, error) {
	if bitWidth < 1 || bitWidth > MaxRLEBitWidth {
		return nil, fmt.Errorf("%w: RLE bit width must be within [1, %d], got %d",
			errs.ErrInvalidConfiguration, MaxRLEBitWidth, bitWidth)
	}

	return &RLEWriter{
		NotSupported: encoding.NotSupported{Name: "RLE"},
		enc:          rle.Encoding{BitWidth: bitWidth},
		maxValue:     maxForWidth(bitWidth),
		page:         newPageBuffer(props),
	}, nil
}

// BitWidth returns the configured bit width.
func (w *RLEWriter) BitWidth() int { return w.enc.BitWidth }

func (w *RLEWriter) WriteBoolean(v bool) error {
	if v {
		return w.write(1)
	}

	return w.write(0)
}

// WriteInt32 appends v to the page.
//
// Returns:
//   - error: errs.ErrValueOutOfRange if v is negative or needs more than the
//     configured bit width
func (w *RLEWriter) WriteInt32(v int32) error {
	if v < 0 {
		return fmt.Errorf("%w: %d is negative", errs.ErrValueOutOfRange, v)
	}

	return w.write(v)
}

func (w *RLEWriter) write(v int32) error {
	if w.page.finished() {
		return errFinished(w.Name)
	}
	if w.sealed {
		return errSealed(w.Name)
	}
	if uint64(v) > w.maxValue {
		return fmt.Errorf("%w: %d needs more than %d bits", errs.ErrValueOutOfRange, v, w.enc.BitWidth)
	}
	w.values = append(w.values, v)

	return nil
}

// BufferedSize returns the size of the values bit-packed at the configured width,
// plus the length prefix.
func (w *RLEWriter) BufferedSize() int {
	return 4 + (len(w.values)*w.enc.BitWidth+7)/8
}

func (w *RLEWriter) AllocatedSize() int {
	return 4*cap(w.values) + cap(w.scratch) + w.page.cap()
}

func (w *RLEWriter) Bytes() ([]byte, error) {
	if w.page.finished() {
		return nil, errFinished(w.Name)
	}
	if w.sealed {
		return w.page.buf.Bytes(), nil
	}

	runs, err := w.enc.EncodeInt32(w.scratch[:0], w.values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.Name, err)
	}
	w.scratch = runs

	w.page.reset()
	w.page.buf.Grow(4 + len(runs))
	w.page.buf.B = binary.LittleEndian.AppendUint32(w.page.buf.B, uint32(len(runs)))
	w.page.buf.MustWrite(runs)
	w.sealed = true

	return w.page.buf.Bytes(), nil
}

func (w *RLEWriter) Encoding() format.EncodingType { return format.RLE }

func (w *RLEWriter) Reset() {
	w.values = w.values[:0]
	w.page.reset()
	w.sealed = false
}

func (w *RLEWriter) DictionaryPage() (*encoding.DictionaryPage, error) { return nil, nil }

func (w *RLEWriter) Finish() {
	w.page.release()
	w.values = nil
	w.scratch = nil
}
