package values

import (
	"fmt"

	pqencoding "github.com/parquet-go/parquet-go/encoding"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

// noValues is the offsets slice of an empty byte array page.
var noValues = []uint32{0}

// pageWriter buffers the values of one page and encodes them with a parquet-go
// encoding when the page is finalized.
//
// It backs every writer whose wire format is a single parquet encoding call:
// plain, fixed-length plain and the three delta encodings.
type pageWriter struct {
	encoding.NotSupported
	enc      pqencoding.Encoding
	accepted uint8
	empty    valueKind
	fixedLen int

	values valueBuffer
	out    pageBuffer
	sealed bool
}

// newPageWriter creates a pageWriter encoding with enc. A page without values is
// encoded as an empty page of the empty kind, so the delta encodings still emit
// their header.
func newPageWriter(name string, enc pqencoding.Encoding, props encoding.Properties, empty valueKind, accepted ...valueKind) pageWriter {
	w := pageWriter{
		NotSupported: encoding.NotSupported{Name: name},
		enc:          enc,
		empty:        empty,
		out:          newPageBuffer(props),
	}
	for _, k := range accepted {
		w.accepted |= 1 << k
	}

	return w
}

func (w *pageWriter) accepts(kind valueKind) bool {
	return w.accepted&(1<<kind) != 0
}

func (w *pageWriter) begin(kind valueKind) error {
	if w.out.finished() {
		return errFinished(w.Name)
	}
	if w.sealed {
		return errSealed(w.Name)
	}

	return w.values.use(kind)
}

func (w *pageWriter) WriteInt32(v int32) error {
	if !w.accepts(kindInt32) {
		return w.NotSupported.WriteInt32(v)
	}
	if err := w.begin(kindInt32); err != nil {
		return err
	}
	w.values.int32s = append(w.values.int32s, v)

	return nil
}

func (w *pageWriter) WriteInt64(v int64) error {
	if !w.accepts(kindInt64) {
		return w.NotSupported.WriteInt64(v)
	}
	if err := w.begin(kindInt64); err != nil {
		return err
	}
	w.values.int64s = append(w.values.int64s, v)

	return nil
}

func (w *pageWriter) WriteFloat(v float32) error {
	if !w.accepts(kindFloat) {
		return w.NotSupported.WriteFloat(v)
	}
	if err := w.begin(kindFloat); err != nil {
		return err
	}
	w.values.floats = append(w.values.floats, v)

	return nil
}

func (w *pageWriter) WriteDouble(v float64) error {
	if !w.accepts(kindDouble) {
		return w.NotSupported.WriteDouble(v)
	}
	if err := w.begin(kindDouble); err != nil {
		return err
	}
	w.values.doubles = append(w.values.doubles, v)

	return nil
}

// WriteByteArray appends v to the page. The bytes are copied, so the caller may
// reuse v once the call returns.
//
// Returns:
//   - error: errs.ErrInvalidValueLength when a fixed-length writer gets a value of
//     another width, errs.ErrUnsupportedValue when the writer does not take byte
//     arrays or the page already holds another kind
func (w *pageWriter) WriteByteArray(v []byte) error {
	if !w.accepts(kindBytes) {
		return w.NotSupported.WriteByteArray(v)
	}
	if w.fixedLen > 0 && len(v) != w.fixedLen {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidValueLength, len(v), w.fixedLen)
	}
	if err := w.begin(kindBytes); err != nil {
		return err
	}

	return w.values.appendBytes(v)
}

// BufferedSize returns the plain size of the buffered values. For the delta
// encodings it is an estimate from above for most inputs.
func (w *pageWriter) BufferedSize() int {
	if w.fixedLen > 0 {
		return len(w.values.data)
	}

	return w.values.plainSize()
}

func (w *pageWriter) AllocatedSize() int { return w.values.allocated() + w.out.cap() }

// Bytes encodes the buffered values and seals the page. Calling it again before
// Reset returns the same payload.
func (w *pageWriter) Bytes() ([]byte, error) {
	if w.out.finished() {
		return nil, errFinished(w.Name)
	}
	if w.sealed {
		return w.out.buf.Bytes(), nil
	}

	kind := w.values.kind
	if kind == kindNone {
		kind = w.empty
	}

	var (
		dst  = w.out.buf.B[:0]
		data []byte
		err  error
	)
	switch kind {
	case kindInt32:
		data, err = w.enc.EncodeInt32(dst, w.values.int32s)
	case kindInt64:
		data, err = w.enc.EncodeInt64(dst, w.values.int64s)
	case kindFloat:
		data, err = w.enc.EncodeFloat(dst, w.values.floats)
	case kindDouble:
		data, err = w.enc.EncodeDouble(dst, w.values.doubles)
	case kindBytes:
		offsets := w.values.offsets
		if len(offsets) == 0 {
			offsets = noValues
		}
		if w.fixedLen > 0 {
			data, err = w.enc.EncodeFixedLenByteArray(dst, w.values.data, w.fixedLen)
		} else {
			data, err = w.enc.EncodeByteArray(dst, w.values.data, offsets)
		}
	default:
		data = dst
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.Name, err)
	}

	w.out.buf.B = data
	w.sealed = true

	return data, nil
}

func (w *pageWriter) Encoding() format.EncodingType {
	return format.EncodingType(w.enc.Encoding())
}

// Reset drops the buffered values and unseals the page.
func (w *pageWriter) Reset() {
	w.values.reset()
	w.out.reset()
	w.sealed = false
}

func (w *pageWriter) DictionaryPage() (*encoding.DictionaryPage, error) { return nil, nil }

// Finish returns the page buffer to the allocator. Later writes fail with
// errs.ErrWriterFinished.
func (w *pageWriter) Finish() {
	w.out.release()
	w.values.free()
}
