// Package fallback implements the dictionary-to-fallback value writer.
//
// A Writer starts by dictionary-coding values. Once the dictionary asks to fall
// back, the values buffered for the current page are re-encoded into the fallback
// writer and every later value goes there. The transition happens at most once and
// is never reverted.
//
// WithFirstPageCheck adds a second trigger: a first page whose dictionary coding
// is not smaller than its plain form falls back before it is emitted. The check is
// off by default.
package fallback

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
	"github.com/arloliu/encsel/internal/options"
)

// State is the active side of a Writer.
type State uint8

const (
	// DictionaryActive routes values to the dictionary writer.
	DictionaryActive State = iota
	// FallbackActive routes values to the fallback writer. It is terminal.
	FallbackActive
)

func (s State) String() string {
	switch s {
	case DictionaryActive:
		return "DictionaryActive"
	case FallbackActive:
		return "FallbackActive"
	default:
		return "Unknown"
	}
}

// Reason tells why a Writer fell back.
type Reason uint8

const (
	// ReasonDictionaryFull means the dictionary exceeded its byte budget or id space.
	ReasonDictionaryFull Reason = iota
	// ReasonPoorCompression means the first page was not smaller than its plain form.
	// Only writers built with WithFirstPageCheck report it.
	ReasonPoorCompression
)

func (r Reason) String() string {
	switch r {
	case ReasonDictionaryFull:
		return "dictionary_full"
	case ReasonPoorCompression:
		return "poor_compression"
	default:
		return "unknown"
	}
}

// Transition describes a completed fallback.
type Transition struct {
	Reason Reason
	// DictionarySize is the number of dictionary entries at the time of the fallback.
	DictionarySize int
	// DictionaryByteSize is the plain-encoded dictionary size at the time of the fallback.
	DictionaryByteSize int
	// Fallback is the encoding used from now on.
	Fallback format.EncodingType
}

// Option configures a Writer.
type Option = options.Option[*Writer]

// WithLogger sets the logger for transition events.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	})
}

// WithColumn names the column in log entries.
func WithColumn(path string) Option {
	return options.NoError(func(w *Writer) {
		w.column = path
	})
}

// WithOnFallback registers fn to run once, right after the writer falls back.
func WithOnFallback(fn func(Transition)) Option {
	return options.NoError(func(w *Writer) {
		w.onFallback = fn
	})
}

// WithFirstPageCheck makes Bytes abandon the dictionary when the first page's
// dictionary-coded size plus the dictionary itself is not below the page's plain
// size.
//
// Later pages are never checked, so a column whose first page compresses well keeps
// its dictionary until the byte budget runs out.
func WithFirstPageCheck() Option {
	return options.NoError(func(w *Writer) {
		w.firstPageCheck = true
	})
}

// Writer is an encoding.ValuesWriter that dictionary-codes until the dictionary
// stops paying off, then continues with a fallback writer.
type Writer struct {
	dict    encoding.DictionaryValuesWriter
	fb      encoding.ValuesWriter
	current encoding.ValuesWriter
	state   State

	rawSize        int
	firstPage      bool
	firstPageCheck bool
	emittedDictIDs bool

	logger     *zap.Logger
	column     string
	onFallback func(Transition)
}

var _ encoding.ValuesWriter = (*Writer)(nil)

// New creates a Writer that owns dict and fb.
//
// The writer starts in DictionaryActive. Both writers must take the column's value
// kind; Finish finishes both.
//
// Parameters:
//   - dict: Dictionary writer that receives values until the fallback
//   - fb: Writer that receives the buffered page and every later value
//   - opts: Writer options
//
// Returns:
//   - *Writer: The wrapper
//   - error: errs.ErrInvalidConfiguration if either writer is nil
func New(dict encoding.DictionaryValuesWriter, fb encoding.ValuesWriter, opts ...Option) (*Writer, error) {
	if dict == nil || fb == nil {
		return nil, fmt.Errorf("%w: fallback writer needs both a dictionary and a fallback writer", errs.ErrInvalidConfiguration)
	}

	w := &Writer{
		dict:      dict,
		fb:        fb,
		current:   dict,
		state:     DictionaryActive,
		firstPage: true,
		logger:    zap.NewNop(),
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// State returns the active side.
func (w *Writer) State() State { return w.state }

// Dictionary returns the dictionary writer.
func (w *Writer) Dictionary() encoding.DictionaryValuesWriter { return w.dict }

// Fallback returns the fallback writer.
func (w *Writer) Fallback() encoding.ValuesWriter { return w.fb }

// WriteBoolean appends v to the active writer and counts one byte of plain size.
func (w *Writer) WriteBoolean(v bool) error {
	if err := w.current.WriteBoolean(v); err != nil {
		return err
	}
	w.rawSize++

	return w.checkFallback()
}

// WriteInt32 appends v to the active writer.
//
// A value that makes the dictionary ask to fall back triggers the transition
// before WriteInt32 returns, so the page buffered so far ends up in the fallback
// writer together with v.
//
// Returns:
//   - error: The active writer's error, or the error of re-encoding the page
func (w *Writer) WriteInt32(v int32) error {
	if err := w.current.WriteInt32(v); err != nil {
		return err
	}
	w.rawSize += 4

	return w.checkFallback()
}

// WriteInt64 appends v to the active writer. See WriteInt32 for the fallback rule.
func (w *Writer) WriteInt64(v int64) error {
	if err := w.current.WriteInt64(v); err != nil {
		return err
	}
	w.rawSize += 8

	return w.checkFallback()
}

// WriteFloat appends v to the active writer. See WriteInt32 for the fallback rule.
func (w *Writer) WriteFloat(v float32) error {
	if err := w.current.WriteFloat(v); err != nil {
		return err
	}
	w.rawSize += 4

	return w.checkFallback()
}

// WriteDouble appends v to the active writer. See WriteInt32 for the fallback rule.
func (w *Writer) WriteDouble(v float64) error {
	if err := w.current.WriteDouble(v); err != nil {
		return err
	}
	w.rawSize += 8

	return w.checkFallback()
}

// WriteByteArray appends v to the active writer and counts its length-prefixed
// plain size. See WriteInt32 for the fallback rule.
func (w *Writer) WriteByteArray(v []byte) error {
	if err := w.current.WriteByteArray(v); err != nil {
		return err
	}
	w.rawSize += 4 + len(v)

	return w.checkFallback()
}

func (w *Writer) checkFallback() error {
	if w.state == DictionaryActive && w.dict.ShouldFallBack() {
		return w.fallBack(ReasonDictionaryFull)
	}

	return nil
}

// fallBack is the only state transition.
func (w *Writer) fallBack(reason Reason) error {
	tr := Transition{
		Reason:             reason,
		DictionarySize:     w.dict.DictionarySize(),
		DictionaryByteSize: w.dict.DictionaryByteSize(),
		Fallback:           w.fb.Encoding(),
	}

	if err := w.dict.FallBackAllValuesTo(w.fb); err != nil {
		return fmt.Errorf("fall back to %s: %w", tr.Fallback, err)
	}
	w.state = FallbackActive
	w.current = w.fb

	w.logger.Debug("dictionary fallback",
		zap.String("column", w.column),
		zap.Stringer("reason", reason),
		zap.Int("dictionary_size", tr.DictionarySize),
		zap.Int("dictionary_bytes", tr.DictionaryByteSize),
		zap.Stringer("fallback", tr.Fallback),
	)
	if w.onFallback != nil {
		w.onFallback(tr)
	}

	return nil
}

// BufferedSize returns the plain size of the values written to the current page,
// so the page writer sizes dictionary pages by their decoded footprint.
func (w *Writer) BufferedSize() int { return w.rawSize }

func (w *Writer) AllocatedSize() int { return w.current.AllocatedSize() }

// Bytes finalizes the current page.
//
// With WithFirstPageCheck, a first page whose dictionary coding does not beat the
// plain size falls back here and is returned in the fallback encoding.
//
// Returns:
//   - []byte: The page payload, valid until Reset
//   - error: The active writer's error
func (w *Writer) Bytes() ([]byte, error) {
	if w.firstPageCheck && w.state == DictionaryActive && w.firstPage {
		data, err := w.dict.Bytes()
		if err != nil {
			return nil, err
		}
		if w.dict.IsCompressionSatisfying(w.rawSize, len(data)) {
			w.emittedDictIDs = true
			return data, nil
		}
		if err := w.fallBack(ReasonPoorCompression); err != nil {
			return nil, err
		}
	}

	data, err := w.current.Bytes()
	if err != nil {
		return nil, err
	}
	if w.state == DictionaryActive {
		w.emittedDictIDs = true
	}

	return data, nil
}

// Encoding returns the encoding of the page being built: RLE_DICTIONARY while the
// dictionary is active, the fallback's encoding afterwards.
func (w *Writer) Encoding() format.EncodingType { return w.current.Encoding() }

// Reset starts the next page on the active writer. Pages after the first are never
// subject to the first-page check.
func (w *Writer) Reset() {
	w.rawSize = 0
	w.firstPage = false
	w.current.Reset()
}

// DictionaryPage returns the dictionary page if any emitted page was dictionary
// coded, even when the writer has since fallen back.
func (w *Writer) DictionaryPage() (*encoding.DictionaryPage, error) {
	if w.emittedDictIDs {
		return w.dict.DictionaryPage()
	}

	return w.fb.DictionaryPage()
}

// Finish releases both writers. Dictionary pages already returned stay valid.
func (w *Writer) Finish() {
	w.dict.Finish()
	w.fb.Finish()
}
