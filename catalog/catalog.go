// Package catalog lists the constructors of the value writers the selector can
// choose from.
//
// A Catalog is a plain struct of functions so tests can replace a single entry,
// for example to count dictionary constructions, while keeping the rest real.
package catalog

import (
	"fmt"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
	"github.com/arloliu/encsel/internal/values"
)

// Catalog holds one constructor per value writer.
type Catalog struct {
	// NewPlain creates a PLAIN writer for numeric and byte array values.
	NewPlain func(props encoding.Properties) (encoding.ValuesWriter, error)
	// NewFixedLenPlain creates a PLAIN writer for values of exactly length bytes.
	NewFixedLenPlain func(length int, props encoding.Properties) (encoding.ValuesWriter, error)
	// NewRLE creates an RLE / bit-packing hybrid writer for values of bitWidth bits.
	NewRLE func(bitWidth int, props encoding.Properties) (encoding.ValuesWriter, error)
	// NewAlignedBitPacking creates a BIT_PACKED writer for values in [0, bound] of at
	// most 8 bits.
	NewAlignedBitPacking func(bound int, props encoding.Properties) (encoding.ValuesWriter, error)
	// NewUnalignedBitPacking creates a BIT_PACKED writer for values in [0, bound] of up
	// to 32 bits using the given bit order.
	NewUnalignedBitPacking func(bound int, order encoding.BitOrder, props encoding.Properties) (encoding.ValuesWriter, error)
	// NewDeltaBinaryPacked32 creates a DELTA_BINARY_PACKED writer for int32 values.
	NewDeltaBinaryPacked32 func(props encoding.Properties) (encoding.ValuesWriter, error)
	// NewDeltaBinaryPacked64 creates a DELTA_BINARY_PACKED writer for int64 values.
	NewDeltaBinaryPacked64 func(props encoding.Properties) (encoding.ValuesWriter, error)
	// NewDeltaLengthByteArray creates a DELTA_LENGTH_BYTE_ARRAY writer.
	NewDeltaLengthByteArray func(props encoding.Properties) (encoding.ValuesWriter, error)
	// NewDeltaByteArray creates a DELTA_BYTE_ARRAY writer.
	NewDeltaByteArray func(props encoding.Properties) (encoding.ValuesWriter, error)
	// NewDictionary creates a dictionary writer for typ. length is the value width for
	// fixed-length byte array columns.
	NewDictionary func(typ format.PhysicalType, length int, props encoding.Properties) (encoding.DictionaryValuesWriter, error)
}

// Default returns the catalog of the writers in this module.
//
// Every entry builds a writer from internal/values backed by the parquet-go
// encoding of the same name; the unaligned bit-packing entry packs values wider
// than 8 bits itself. The returned Catalog is a fresh value, so replacing an entry
// does not affect other callers.
//
// Returns:
//   - Catalog: A catalog with every constructor set; Validate reports no error
func Default() Catalog {
	return Catalog{
		NewPlain: func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return values.NewPlainWriter(props), nil
		},
		NewFixedLenPlain: func(length int, props encoding.Properties) (encoding.ValuesWriter, error) {
			w, err := values.NewFixedLenPlainWriter(length, props)
			return wrap(w, err)
		},
		NewRLE: func(bitWidth int, props encoding.Properties) (encoding.ValuesWriter, error) {
			w, err := values.NewRLEWriter(bitWidth, props)
			return wrap(w, err)
		},
		NewAlignedBitPacking: func(bound int, props encoding.Properties) (encoding.ValuesWriter, error) {
			w, err := values.NewBitPackingWriter(bound, props)
			return wrap(w, err)
		},
		NewUnalignedBitPacking: func(bound int, order encoding.BitOrder, props encoding.Properties) (encoding.ValuesWriter, error) {
			w, err := values.NewByteBitPackingWriter(bound, order, props)
			return wrap(w, err)
		},
		NewDeltaBinaryPacked32: func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return values.NewDeltaBinaryPackedInt32Writer(props), nil
		},
		NewDeltaBinaryPacked64: func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return values.NewDeltaBinaryPackedInt64Writer(props), nil
		},
		NewDeltaLengthByteArray: func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return values.NewDeltaLengthByteArrayWriter(props), nil
		},
		NewDeltaByteArray: func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return values.NewDeltaByteArrayWriter(props), nil
		},
		NewDictionary: func(typ format.PhysicalType, length int, props encoding.Properties) (encoding.DictionaryValuesWriter, error) {
			w, err := values.NewDictionaryWriter(typ, length, props)
			if err != nil {
				return nil, err
			}

			return w, nil
		},
	}
}

// wrap converts a concrete constructor result to the interface without turning a
// nil pointer into a non-nil interface.
func wrap[W encoding.ValuesWriter](w W, err error) (encoding.ValuesWriter, error) {
	if err != nil {
		return nil, err
	}

	return w, nil
}

// Validate reports an error if any constructor is missing.
func (c Catalog) Validate() error {
	missing := ""
	switch {
	case c.NewPlain == nil:
		missing = "NewPlain"
	case c.NewFixedLenPlain == nil:
		missing = "NewFixedLenPlain"
	case c.NewRLE == nil:
		missing = "NewRLE"
	case c.NewAlignedBitPacking == nil:
		missing = "NewAlignedBitPacking"
	case c.NewUnalignedBitPacking == nil:
		missing = "NewUnalignedBitPacking"
	case c.NewDeltaBinaryPacked32 == nil:
		missing = "NewDeltaBinaryPacked32"
	case c.NewDeltaBinaryPacked64 == nil:
		missing = "NewDeltaBinaryPacked64"
	case c.NewDeltaLengthByteArray == nil:
		missing = "NewDeltaLengthByteArray"
	case c.NewDeltaByteArray == nil:
		missing = "NewDeltaByteArray"
	case c.NewDictionary == nil:
		missing = "NewDictionary"
	default:
		return nil
	}

	return fmt.Errorf("%w: catalog has no %s constructor", errs.ErrInvalidConfiguration, missing)
}
