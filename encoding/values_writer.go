package encoding

import (
	"fmt"

	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

// ValuesWriter is the encoder handle returned for a column.
//
// A writer accepts one value at a time through the Write method matching the
// column's physical type. Int96 and fixed-length byte array values are written with
// WriteByteArray. Writing a kind the writer does not accept returns
// errs.ErrUnsupportedValue.
//
// The page lifecycle is: a sequence of writes, Bytes to finalize the page and
// Encoding to learn its tag, then Reset before writing the next page. After the
// last page DictionaryPage returns the dictionary page, if any, and Finish releases
// pooled buffers.
//
// Writers are not safe for concurrent use.
type ValuesWriter interface {
	WriteBoolean(v bool) error
	WriteInt32(v int32) error
	WriteInt64(v int64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error
	WriteByteArray(v []byte) error

	// BufferedSize returns the approximate encoded size of the current page in bytes.
	BufferedSize() int

	// AllocatedSize returns the number of bytes reserved by the writer's buffers.
	AllocatedSize() int

	// Bytes finalizes the current page and returns its encoded payload.
	// The returned slice is valid until the next call to Reset or Finish.
	Bytes() ([]byte, error)

	// Encoding returns the wire encoding of the page produced by Bytes.
	Encoding() format.EncodingType

	// Reset clears the current page so the writer can encode the next one.
	Reset()

	// DictionaryPage returns the dictionary page referenced by the data pages,
	// or nil when the writer produced no dictionary-coded page.
	//
	// The page covers the data pages returned by Bytes so far. It belongs to the
	// caller: later Bytes, Reset or Finish calls never modify it.
	DictionaryPage() (*DictionaryPage, error)

	// Finish releases the writer's buffers. The writer must not be used afterwards.
	Finish()
}

// DictionaryValuesWriter is a ValuesWriter that dictionary-codes its values and can
// tell when dictionary coding has stopped paying off.
type DictionaryValuesWriter interface {
	ValuesWriter

	// DictionarySize returns the number of distinct values in the dictionary.
	DictionarySize() int

	// DictionaryByteSize returns the plain-encoded size of the dictionary.
	DictionaryByteSize() int

	// ShouldFallBack reports whether the dictionary grew past its byte budget or past
	// the number of ids a data page can address.
	ShouldFallBack() bool

	// IsCompressionSatisfying reports whether a page of encodedSize bytes plus the
	// dictionary is smaller than the rawSize bytes the values would take plainly.
	IsCompressionSatisfying(rawSize, encodedSize int) bool

	// FallBackAllValuesTo re-encodes the values buffered for the current page into w
	// and discards the writer's page buffers.
	FallBackAllValuesTo(w ValuesWriter) error
}

// DictionaryPage is an encoded dictionary page.
type DictionaryPage struct {
	Bytes     []byte
	NumValues int
	Encoding  format.EncodingType
}

// NotSupported implements the Write methods of ValuesWriter by returning
// errs.ErrUnsupportedValue. Writers embed it and override the kinds they accept.
type NotSupported struct {
	// Name identifies the embedding writer in error messages.
	Name string
}

func (n NotSupported) unsupported(kind string) error {
	return fmt.Errorf("%w: %s writer cannot encode %s", errs.ErrUnsupportedValue, n.Name, kind)
}

func (n NotSupported) WriteBoolean(bool) error     { return n.unsupported("boolean") }
func (n NotSupported) WriteInt32(int32) error      { return n.unsupported("int32") }
func (n NotSupported) WriteInt64(int64) error      { return n.unsupported("int64") }
func (n NotSupported) WriteFloat(float32) error    { return n.unsupported("float") }
func (n NotSupported) WriteDouble(float64) error   { return n.unsupported("double") }
func (n NotSupported) WriteByteArray([]byte) error { return n.unsupported("byte array") }

// BitOrder selects the bit order used by the bit-packing writers.
type BitOrder uint8

const (
	// BigEndian packs the most significant bit of each value first. It is the order of
	// the deprecated BIT_PACKED encoding.
	BigEndian BitOrder = iota
	// LittleEndian packs the least significant bit of each value first, as RLE runs do.
	LittleEndian
)

func (o BitOrder) String() string {
	switch o {
	case BigEndian:
		return "BigEndian"
	case LittleEndian:
		return "LittleEndian"
	default:
		return "Unknown"
	}
}
