package values

import (
	"fmt"

	"github.com/parquet-go/parquet-go/encoding/plain"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
)

// PlainWriter writes PLAIN pages: values back to back in little-endian form, byte
// arrays prefixed with their 4-byte length.
//
// It takes int32, int64, float, double and byte array values. A page holds a single
// kind; the first value written after Reset decides which.
type PlainWriter struct {
	pageWriter
}

var _ encoding.ValuesWriter = (*PlainWriter)(nil)

// NewPlainWriter creates a plain writer.
//
// Parameters:
//   - props: Write-session properties; the page buffer comes from props.Allocator
//
// Returns:
//   - *PlainWriter: A writer ready for the first page
func NewPlainWriter(props encoding.Properties) *PlainWriter {
	return &PlainWriter{
		pageWriter: newPageWriter("plain", &plain.Encoding{}, props, kindNone,
			kindInt32, kindInt64, kindFloat, kindDouble, kindBytes),
	}
}

// FixedLenPlainWriter writes PLAIN pages of fixed-width byte strings with no length
// prefix. It serves fixed-length byte array and int96 columns.
type FixedLenPlainWriter struct {
	pageWriter
}

var _ encoding.ValuesWriter = (*FixedLenPlainWriter)(nil)

// NewFixedLenPlainWriter creates a plain writer for values of exactly length bytes.
//
// Parameters:
//   - length: Value width in bytes, 12 for int96 columns
//   - props: Write-session properties
//
// Returns:
//   - *FixedLenPlainWriter: The writer
//   - error: errs.ErrInvalidConfiguration if length is not positive
func NewFixedLenPlainWriter(length int, props encoding.Properties) (*FixedLenPlainWriter, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: fixed-length plain writer needs a positive length, got %d", errs.ErrInvalidConfiguration, length)
	}

	w := &FixedLenPlainWriter{
		pageWriter: newPageWriter("fixed-length plain", &plain.Encoding{}, props, kindBytes, kindBytes),
	}
	w.fixedLen = length

	return w, nil
}

// Length returns the value width in bytes.
func (w *FixedLenPlainWriter) Length() int { return w.fixedLen }
