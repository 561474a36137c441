// Package config resolves the encoding policy: the operator-supplied choice of int
// and string encodings plus the bit-packing parameters.
//
// A Policy is an immutable value. Sources produce a fresh Policy on every call, so
// a change in the environment is visible to the next selection.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/encsel/errs"
)

// Policy option names. Environment variables carry the EnvPrefix, for example
// ENCSEL_INT_ENCODING.
const (
	KeyIntEncoding    = "int_encoding"
	KeyStringEncoding = "string_encoding"
	KeyIntBitLength   = "int_bit_length"
	KeyIntBound       = "int_bound"

	EnvPrefix = "ENCSEL"
)

// IntEncoding is the encoding requested for int32 columns.
type IntEncoding uint8

const (
	// IntDictionaryDefault dictionary-codes with delta binary packing as fallback.
	IntDictionaryDefault IntEncoding = iota
	// IntBP bit-packs values in [0, IntBound].
	IntBP
	// IntDeltaBP uses delta binary packing.
	IntDeltaBP
	// IntRLE uses the RLE / bit-packing hybrid with IntBitLength bits.
	IntRLE
	// IntPlain stores values plainly.
	IntPlain
)

func (e IntEncoding) String() string {
	switch e {
	case IntDictionaryDefault:
		return "DICTIONARY"
	case IntBP:
		return "BP"
	case IntDeltaBP:
		return "DELTABP"
	case IntRLE:
		return "RLE"
	case IntPlain:
		return "PLAIN"
	default:
		return "Unknown"
	}
}

// ParseIntEncoding parses an int encoding name. Names are case-insensitive and an
// empty name selects IntDictionaryDefault.
func ParseIntEncoding(name string) (IntEncoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "DICTIONARY", "DEFAULT":
		return IntDictionaryDefault, nil
	case "BP":
		return IntBP, nil
	case "DELTABP":
		return IntDeltaBP, nil
	case "RLE":
		return IntRLE, nil
	case "PLAIN":
		return IntPlain, nil
	default:
		return IntDictionaryDefault, fmt.Errorf("%w: unknown %s %q", errs.ErrInvalidConfiguration, KeyIntEncoding, name)
	}
}

// StringEncoding is the encoding requested for byte array columns.
type StringEncoding uint8

const (
	// StringDictionaryDefault dictionary-codes with delta byte array as fallback.
	StringDictionaryDefault StringEncoding = iota
	// StringDeltaLength uses delta length byte array.
	StringDeltaLength
	// StringDelta uses delta byte array (front coding).
	StringDelta
	// StringPlain stores values plainly and never builds a dictionary.
	StringPlain
)

func (e StringEncoding) String() string {
	switch e {
	case StringDictionaryDefault:
		return "DICTIONARY"
	case StringDeltaLength:
		return "DELTAL"
	case StringDelta:
		return "DELTA"
	case StringPlain:
		return "PLAIN"
	default:
		return "Unknown"
	}
}

// ParseStringEncoding parses a string encoding name. Names are case-insensitive and
// an empty name selects StringDictionaryDefault.
func ParseStringEncoding(name string) (StringEncoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "DICTIONARY", "DEFAULT":
		return StringDictionaryDefault, nil
	case "DELTAL":
		return StringDeltaLength, nil
	case "DELTA":
		return StringDelta, nil
	case "PLAIN":
		return StringPlain, nil
	default:
		return StringDictionaryDefault, fmt.Errorf("%w: unknown %s %q", errs.ErrInvalidConfiguration, KeyStringEncoding, name)
	}
}

// OptionalInt is an integer policy value that may be unset.
type OptionalInt struct {
	value int
	set   bool
}

// Int returns a set OptionalInt.
func Int(v int) OptionalInt {
	return OptionalInt{value: v, set: true}
}

// Get returns the value and whether it is set.
func (o OptionalInt) Get() (int, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is set.
func (o OptionalInt) IsSet() bool {
	return o.set
}

func (o OptionalInt) String() string {
	if !o.set {
		return "unset"
	}

	return strconv.Itoa(o.value)
}

// Policy is an immutable snapshot of the encoding options.
type Policy struct {
	IntEncoding    IntEncoding
	StringEncoding StringEncoding
	IntBitLength   OptionalInt
	IntBound       OptionalInt
}

// DefaultPolicy returns the policy with every option unset.
func DefaultPolicy() Policy {
	return Policy{}
}

// BitLength returns IntBitLength, which must be set and positive.
func (p Policy) BitLength() (int, error) {
	v, ok := p.IntBitLength.Get()
	if !ok {
		return 0, fmt.Errorf("%w: %s is required for int encoding %s", errs.ErrInvalidConfiguration, KeyIntBitLength, p.IntEncoding)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", errs.ErrInvalidConfiguration, KeyIntBitLength, v)
	}

	return v, nil
}

// Bound returns IntBound, which must be set and not negative.
func (p Policy) Bound() (int, error) {
	v, ok := p.IntBound.Get()
	if !ok {
		return 0, fmt.Errorf("%w: %s is required for int encoding %s", errs.ErrInvalidConfiguration, KeyIntBound, p.IntEncoding)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", errs.ErrInvalidConfiguration, KeyIntBound, v)
	}

	return v, nil
}

func (p Policy) String() string {
	return fmt.Sprintf("int=%s string=%s bit_length=%s bound=%s",
		p.IntEncoding, p.StringEncoding, p.IntBitLength, p.IntBound)
}

// ParsePolicy builds a Policy from raw option strings keyed by the Key constants.
// Missing or empty values are unset. A present value that does not parse is an
// errs.ErrInvalidConfiguration.
func ParsePolicy(raw map[string]string) (Policy, error) {
	var (
		p   Policy
		err error
	)

	if p.IntEncoding, err = ParseIntEncoding(raw[KeyIntEncoding]); err != nil {
		return Policy{}, err
	}
	if p.StringEncoding, err = ParseStringEncoding(raw[KeyStringEncoding]); err != nil {
		return Policy{}, err
	}
	if p.IntBitLength, err = parseOptionalInt(KeyIntBitLength, raw[KeyIntBitLength]); err != nil {
		return Policy{}, err
	}
	if p.IntBound, err = parseOptionalInt(KeyIntBound, raw[KeyIntBound]); err != nil {
		return Policy{}, err
	}

	return p, nil
}

func parseOptionalInt(key, s string) (OptionalInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptionalInt{}, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return OptionalInt{}, fmt.Errorf("%w: %s %q is not an integer", errs.ErrInvalidConfiguration, key, s)
	}

	return Int(v), nil
}
