package values

import (
	"bytes"
	"fmt"
	"math"

	"github.com/parquet-go/parquet-go/encoding/plain"
	"github.com/parquet-go/parquet-go/encoding/rle"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
	"github.com/arloliu/encsel/internal/hash"
)

// MaxDictionaryEntries is the largest number of distinct values a dictionary may hold.
const MaxDictionaryEntries = math.MaxInt32 - 1

// DictionaryWriter dictionary-codes the values of one column.
//
// Data pages are RLE_DICTIONARY: one byte holding the id bit width followed by the
// ids as an RLE / bit-packing hybrid stream. The dictionary page is PLAIN and lists
// the entries referenced by the pages emitted so far. Both are encoded by
// parquet-go.
//
// Numeric values are keyed by their bit pattern, so distinct NaN payloads and
// signed zeros are distinct entries. Byte values are keyed by their xxhash digest
// with a collision chain compared byte for byte.
type DictionaryWriter struct {
	encoding.NotSupported
	typ         format.PhysicalType
	kind        valueKind
	length      int
	maxByteSize int
	dictAlloc   encoding.Allocator

	numIndex  map[uint64]int32
	byteIndex map[uint64][]int32
	entries   valueBuffer
	byteSize  int

	ids          []int32
	lastUsedSize int

	idEncoding   rle.DictionaryEncoding
	pageEncoding plain.Encoding
	page         pageBuffer
	dictPage     *encoding.DictionaryPage
	sealed       bool
}

var _ encoding.DictionaryValuesWriter = (*DictionaryWriter)(nil)

// NewDictionaryWriter creates a dictionary writer for values of the given physical
// type.
//
// The dictionary byte budget is props.DictionaryPageSizeThreshold; past it
// ShouldFallBack reports true. Data pages are allocated from props.Allocator and the
// dictionary page from props.DictionaryAllocator.
//
// Parameters:
//   - typ: Physical type of the column; Boolean has no dictionary encoding
//   - length: Value width of fixed-length byte array columns, ignored otherwise
//   - props: Write-session properties
//
// Returns:
//   - *DictionaryWriter: The writer
//   - error: errs.ErrUnsupportedType for Boolean or unknown types,
//     errs.ErrInvalidConfiguration for a fixed-length column without a positive length
func NewDictionaryWriter(typ format.PhysicalType, length int, props encoding.Properties) (*DictionaryWriter, error) {
	props = props.WithDefaults()

	w := &DictionaryWriter{
		NotSupported: encoding.NotSupported{Name: "dictionary " + typ.String()},
		typ:          typ,
		maxByteSize:  props.DictionaryPageSizeThreshold,
		dictAlloc:    props.DictionaryAllocator,
	}

	switch typ {
	case format.Int32:
		w.kind = kindInt32
	case format.Int64:
		w.kind = kindInt64
	case format.Float:
		w.kind = kindFloat
	case format.Double:
		w.kind = kindDouble
	case format.Int96:
		w.kind = kindBytes
		w.length = format.Int96Size
	case format.FixedLenByteArray:
		if length <= 0 {
			return nil, fmt.Errorf("%w: fixed-length dictionary needs a positive type length, got %d",
				errs.ErrInvalidConfiguration, length)
		}
		w.kind = kindBytes
		w.length = length
	case format.ByteArray:
		w.kind = kindBytes
	default:
		return nil, fmt.Errorf("%w: dictionary encoding is not defined for %s", errs.ErrUnsupportedType, typ)
	}

	if w.kind == kindBytes {
		w.byteIndex = make(map[uint64][]int32)
	} else {
		w.numIndex = make(map[uint64]int32)
	}
	_ = w.entries.use(w.kind)
	w.page = newPageBuffer(props)

	return w, nil
}

// WriteInt32 appends the id of v to the page, adding v to the dictionary when it is
// new. The writer takes only the value kind of its physical type.
//
// Returns:
//   - error: errs.ErrUnsupportedValue for another kind, errs.ErrPageSealed after
//     Bytes until Reset, errs.ErrWriterFinished after Finish
func (w *DictionaryWriter) WriteInt32(v int32) error {
	if w.kind != kindInt32 {
		return w.NotSupported.WriteInt32(v)
	}

	return w.addNumeric(uint64(uint32(v)), func() { w.entries.int32s = append(w.entries.int32s, v) })
}

func (w *DictionaryWriter) WriteInt64(v int64) error {
	if w.kind != kindInt64 {
		return w.NotSupported.WriteInt64(v)
	}

	return w.addNumeric(uint64(v), func() { w.entries.int64s = append(w.entries.int64s, v) })
}

func (w *DictionaryWriter) WriteFloat(v float32) error {
	if w.kind != kindFloat {
		return w.NotSupported.WriteFloat(v)
	}

	return w.addNumeric(uint64(math.Float32bits(v)), func() { w.entries.floats = append(w.entries.floats, v) })
}

func (w *DictionaryWriter) WriteDouble(v float64) error {
	if w.kind != kindDouble {
		return w.NotSupported.WriteDouble(v)
	}

	return w.addNumeric(math.Float64bits(v), func() { w.entries.doubles = append(w.entries.doubles, v) })
}

// WriteByteArray appends v to the page, adding it to the dictionary when it is new.
// Int96 and fixed-length values must have the column's width.
func (w *DictionaryWriter) WriteByteArray(v []byte) error {
	if w.kind != kindBytes {
		return w.NotSupported.WriteByteArray(v)
	}
	if w.length > 0 && len(v) != w.length {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidValueLength, len(v), w.length)
	}

	return w.addBytes(v)
}

func (w *DictionaryWriter) checkWritable() error {
	if w.page.finished() {
		return errFinished(w.Name)
	}
	if w.sealed {
		return errSealed(w.Name)
	}

	return nil
}

// addNumeric records the id of key, calling add to store the value when the key
// is new.
func (w *DictionaryWriter) addNumeric(key uint64, add func()) error {
	if err := w.checkWritable(); err != nil {
		return err
	}

	id, ok := w.numIndex[key]
	if !ok {
		id = int32(w.entries.len())
		add()
		w.numIndex[key] = id
		w.byteSize += w.typ.Size()
	}
	w.ids = append(w.ids, id)

	return nil
}

func (w *DictionaryWriter) addBytes(v []byte) error {
	if err := w.checkWritable(); err != nil {
		return err
	}

	h := hash.Bytes(v)
	for _, id := range w.byteIndex[h] {
		if bytes.Equal(w.entries.index(int(id)), v) {
			w.ids = append(w.ids, id)
			return nil
		}
	}

	id := int32(w.entries.len())
	if err := w.entries.appendBytes(v); err != nil {
		return err
	}
	w.byteIndex[h] = append(w.byteIndex[h], id)
	w.byteSize += w.entrySize(v)
	w.ids = append(w.ids, id)

	return nil
}

// entrySize returns the plain-encoded size of a byte entry.
func (w *DictionaryWriter) entrySize(v []byte) int {
	if w.length > 0 {
		return w.length
	}

	return 4 + len(v)
}

// DictionarySize returns the number of distinct values.
func (w *DictionaryWriter) DictionarySize() int { return w.entries.len() }

// DictionaryByteSize returns the plain-encoded size of all entries.
func (w *DictionaryWriter) DictionaryByteSize() int { return w.byteSize }

// ShouldFallBack reports whether the dictionary outgrew its byte budget or the ids
// a data page can address.
func (w *DictionaryWriter) ShouldFallBack() bool {
	return w.byteSize > w.maxByteSize || w.DictionarySize() > MaxDictionaryEntries
}

// IsCompressionSatisfying reports whether encodedSize bytes of ids plus the
// dictionary beat the rawSize bytes the values take plainly.
func (w *DictionaryWriter) IsCompressionSatisfying(rawSize, encodedSize int) bool {
	return encodedSize+w.byteSize < rawSize
}

// BufferedSize returns the size of the buffered ids, 4 bytes each.
func (w *DictionaryWriter) BufferedSize() int { return len(w.ids) * 4 }

func (w *DictionaryWriter) AllocatedSize() int {
	return cap(w.ids)*4 + w.page.cap() + w.entries.allocated()
}

// Bytes encodes the ids of the current page. The dictionary entries that exist at
// this point are the ones DictionaryPage lists.
func (w *DictionaryWriter) Bytes() ([]byte, error) {
	if w.page.finished() {
		return nil, errFinished(w.Name)
	}
	if w.sealed {
		return w.page.buf.Bytes(), nil
	}

	data, err := w.idEncoding.EncodeInt32(w.page.buf.B[:0], w.ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.Name, err)
	}
	w.page.buf.B = data

	w.lastUsedSize = w.entries.len()
	w.dictPage = nil
	w.sealed = true

	return data, nil
}

func (w *DictionaryWriter) Encoding() format.EncodingType { return format.RLEDictionary }

// Reset starts the next data page. Dictionary entries are kept.
func (w *DictionaryWriter) Reset() {
	if w.page.finished() {
		return
	}
	w.resetPage()
}

func (w *DictionaryWriter) resetPage() {
	w.ids = w.ids[:0]
	w.page.reset()
	w.sealed = false
}

// DictionaryPage returns the PLAIN dictionary page covering every entry referenced
// by the pages returned from Bytes, or nil if no page was produced.
//
// A later Bytes call builds a new page on the next DictionaryPage call; pages
// returned earlier stay intact and belong to the caller.
func (w *DictionaryWriter) DictionaryPage() (*encoding.DictionaryPage, error) {
	if w.page.finished() {
		return nil, errFinished(w.Name)
	}
	if w.lastUsedSize == 0 {
		return nil, nil
	}
	if w.dictPage != nil {
		return w.dictPage, nil
	}

	var (
		n   = w.lastUsedSize
		dst = w.dictAlloc.Allocate(w.byteSize)
		out []byte
		err error
	)
	switch w.kind {
	case kindInt32:
		out, err = w.pageEncoding.EncodeInt32(dst, w.entries.int32s[:n])
	case kindInt64:
		out, err = w.pageEncoding.EncodeInt64(dst, w.entries.int64s[:n])
	case kindFloat:
		out, err = w.pageEncoding.EncodeFloat(dst, w.entries.floats[:n])
	case kindDouble:
		out, err = w.pageEncoding.EncodeDouble(dst, w.entries.doubles[:n])
	default:
		data := w.entries.data[:w.entries.offsets[n]]
		if w.length > 0 {
			out, err = w.pageEncoding.EncodeFixedLenByteArray(dst, data, w.length)
		} else {
			out, err = w.pageEncoding.EncodeByteArray(dst, data, w.entries.offsets[:n+1])
		}
	}
	if err != nil {
		w.dictAlloc.Release(dst)
		return nil, fmt.Errorf("%s dictionary page: %w", w.Name, err)
	}

	w.dictPage = &encoding.DictionaryPage{Bytes: out, NumValues: n, Encoding: format.Plain}

	return w.dictPage, nil
}

// FallBackAllValuesTo writes the values of the current page to fb in order and
// discards the page. Entries referenced by earlier pages are kept for the
// dictionary page; if no page was ever produced the dictionary is cleared.
func (w *DictionaryWriter) FallBackAllValuesTo(fb encoding.ValuesWriter) error {
	if w.page.finished() {
		return errFinished(w.Name)
	}

	for _, id := range w.ids {
		if err := w.writeEntry(fb, int(id)); err != nil {
			return err
		}
	}
	w.resetPage()

	if w.lastUsedSize == 0 {
		w.clearEntries()
	}

	return nil
}

func (w *DictionaryWriter) writeEntry(fb encoding.ValuesWriter, id int) error {
	switch w.kind {
	case kindInt32:
		return fb.WriteInt32(w.entries.int32s[id])
	case kindInt64:
		return fb.WriteInt64(w.entries.int64s[id])
	case kindFloat:
		return fb.WriteFloat(w.entries.floats[id])
	case kindDouble:
		return fb.WriteDouble(w.entries.doubles[id])
	default:
		return fb.WriteByteArray(w.entries.index(id))
	}
}

func (w *DictionaryWriter) clearEntries() {
	clear(w.numIndex)
	clear(w.byteIndex)
	w.entries.reset()
	_ = w.entries.use(w.kind)
	w.byteSize = 0
}

// Finish releases the page buffers. Dictionary pages returned earlier stay valid.
func (w *DictionaryWriter) Finish() {
	if w.page.finished() {
		return
	}
	w.page.release()
	w.dictPage = nil
	w.numIndex = nil
	w.byteIndex = nil
	w.entries.free()
	w.ids = nil
}
