// Package selector chooses the value writer for a column.
//
// The choice depends only on the column's physical type and the encoding policy:
// booleans are always RLE coded, int32 and byte array columns follow the
// operator's int and string encoding, and every other type is dictionary coded
// with a type-specific fallback.
//
// Selection is synchronous and a Selector holds no mutable state, so one Selector
// may serve many goroutines. The returned writers are not safe for concurrent use.
package selector

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/encsel/catalog"
	"github.com/arloliu/encsel/column"
	"github.com/arloliu/encsel/config"
	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/fallback"
	"github.com/arloliu/encsel/format"
	"github.com/arloliu/encsel/internal/options"
	"github.com/arloliu/encsel/internal/values"
)

// Strategy names the writer arrangement chosen for a column.
type Strategy uint8

const (
	// StrategyRLE is the RLE / bit-packing hybrid.
	StrategyRLE Strategy = iota
	// StrategyDictionary is a dictionary writer with a fallback writer.
	StrategyDictionary
	// StrategyAlignedBitPacking is BIT_PACKED with at most 8 bits per value.
	StrategyAlignedBitPacking
	// StrategyUnalignedBitPacking is big-endian BIT_PACKED with more than 8 bits per value.
	StrategyUnalignedBitPacking
	// StrategyDeltaBinaryPacked is DELTA_BINARY_PACKED.
	StrategyDeltaBinaryPacked
	// StrategyDeltaLengthByteArray is DELTA_LENGTH_BYTE_ARRAY.
	StrategyDeltaLengthByteArray
	// StrategyDeltaByteArray is DELTA_BYTE_ARRAY.
	StrategyDeltaByteArray
	// StrategyPlain is PLAIN.
	StrategyPlain
)

func (s Strategy) String() string {
	switch s {
	case StrategyRLE:
		return "rle"
	case StrategyDictionary:
		return "dictionary"
	case StrategyAlignedBitPacking:
		return "bit_packing_aligned"
	case StrategyUnalignedBitPacking:
		return "bit_packing_unaligned"
	case StrategyDeltaBinaryPacked:
		return "delta_binary_packed"
	case StrategyDeltaLengthByteArray:
		return "delta_length_byte_array"
	case StrategyDeltaByteArray:
		return "delta_byte_array"
	case StrategyPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// alignedBitLengthLimit is the largest IntBitLength served by the aligned packer.
const alignedBitLengthLimit = 8

// Selector picks value writers.
type Selector struct {
	props   encoding.Properties
	catalog catalog.Catalog
	source  config.Source
	logger  *zap.Logger
	metrics *Metrics
}

// New creates a Selector.
//
// Without options it uses the default properties and catalog, and NewValuesWriter
// applies config.DefaultPolicy. Pass WithSource(config.NewViperSource(nil)) to read
// the policy from ENCSEL_ environment variables instead.
//
// Parameters:
//   - opts: Properties, catalog, policy source, logger and metrics overrides
//
// Returns:
//   - *Selector: A selector safe for concurrent use
//   - error: errs.ErrInvalidConfiguration if an option is invalid
func New(opts ...Option) (*Selector, error) {
	s := &Selector{
		props:   encoding.DefaultProperties(),
		catalog: catalog.Default(),
		source:  config.Static(config.DefaultPolicy()),
		logger:  zap.NewNop(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Properties returns the properties passed to every writer.
func (s *Selector) Properties() encoding.Properties { return s.props }

// NewValuesWriter reads the current policy from the Selector's source and returns
// the writer for desc.
//
// The source is consulted on every call, so a policy change applies to the next
// column without rebuilding the Selector.
//
// Parameters:
//   - desc: Column descriptor
//
// Returns:
//   - encoding.ValuesWriter: A fresh writer owned by the caller, who must Finish it
//   - error: The source's error, or any error Select returns
func (s *Selector) NewValuesWriter(desc column.Descriptor) (encoding.ValuesWriter, error) {
	policy, err := s.source.Policy()
	if err != nil {
		return nil, err
	}

	return s.Select(desc, policy)
}

// Select returns the writer for desc under policy.
//
// Returns:
//   - encoding.ValuesWriter: A fresh writer owned by the caller
//   - error: errs.ErrUnsupportedType for an unknown physical type,
//     errs.ErrInvalidConfiguration when the policy lacks a value the chosen path
//     needs, or any catalog constructor error
func (s *Selector) Select(desc column.Descriptor, policy config.Policy) (encoding.ValuesWriter, error) {
	w, _, err := s.Choose(desc, policy)
	return w, err
}

// Choose is Select that also reports the chosen strategy.
func (s *Selector) Choose(desc column.Descriptor, policy config.Policy) (encoding.ValuesWriter, Strategy, error) {
	var (
		w        encoding.ValuesWriter
		strategy Strategy
		err      error
	)

	switch desc.Type {
	case format.Boolean:
		strategy = StrategyRLE
		w, err = s.catalog.NewRLE(1, s.props)
	case format.FixedLenByteArray:
		strategy = StrategyDictionary
		w, err = s.withDictionary(desc, s.catalog.NewDeltaByteArray)
	case format.ByteArray:
		w, strategy, err = s.byteArrayWriter(desc, policy)
	case format.Int32:
		w, strategy, err = s.int32Writer(desc, policy)
	case format.Int64:
		strategy = StrategyDictionary
		w, err = s.withDictionary(desc, s.catalog.NewDeltaBinaryPacked64)
	case format.Int96:
		strategy = StrategyDictionary
		w, err = s.withDictionary(desc, func(props encoding.Properties) (encoding.ValuesWriter, error) {
			return s.catalog.NewFixedLenPlain(format.Int96Size, props)
		})
	case format.Double, format.Float:
		strategy = StrategyDictionary
		w, err = s.withDictionary(desc, s.catalog.NewPlain)
	default:
		return nil, 0, fmt.Errorf("%w: type code %d of column %q", errs.ErrUnsupportedType, uint8(desc.Type), desc.PathString())
	}
	if err != nil {
		return nil, 0, err
	}

	s.metrics.observeSelection(desc.Type, strategy)
	s.logger.Debug("selected values writer",
		zap.String("column", desc.PathString()),
		zap.Stringer("type", desc.Type),
		zap.Stringer("strategy", strategy),
		zap.Stringer("encoding", w.Encoding()),
	)

	return w, strategy, nil
}

func (s *Selector) byteArrayWriter(desc column.Descriptor, policy config.Policy) (encoding.ValuesWriter, Strategy, error) {
	switch policy.StringEncoding {
	case config.StringDeltaLength:
		w, err := s.catalog.NewDeltaLengthByteArray(s.props)
		return w, StrategyDeltaLengthByteArray, err
	case config.StringDelta:
		w, err := s.catalog.NewDeltaByteArray(s.props)
		return w, StrategyDeltaByteArray, err
	case config.StringPlain:
		w, err := s.catalog.NewPlain(s.props)
		return w, StrategyPlain, err
	case config.StringDictionaryDefault:
		w, err := s.withDictionary(desc, s.catalog.NewDeltaByteArray)
		return w, StrategyDictionary, err
	default:
		return nil, 0, fmt.Errorf("%w: unknown string encoding %d", errs.ErrInvalidConfiguration, policy.StringEncoding)
	}
}

func (s *Selector) int32Writer(desc column.Descriptor, policy config.Policy) (encoding.ValuesWriter, Strategy, error) {
	switch policy.IntEncoding {
	case config.IntBP:
		bitLength, err := policy.BitLength()
		if err != nil {
			return nil, 0, err
		}
		bound, err := policy.Bound()
		if err != nil {
			return nil, 0, err
		}
		if bitLength <= alignedBitLengthLimit {
			if width := values.WidthFromBound(bound); width > alignedBitLengthLimit {
				return nil, 0, fmt.Errorf("%w: %s %d needs %d bits but %s is %d",
					errs.ErrInvalidConfiguration, config.KeyIntBound, bound, width, config.KeyIntBitLength, bitLength)
			}
			w, err := s.catalog.NewAlignedBitPacking(bound, s.props)
			return w, StrategyAlignedBitPacking, err
		}
		w, err := s.catalog.NewUnalignedBitPacking(bound, encoding.BigEndian, s.props)

		return w, StrategyUnalignedBitPacking, err
	case config.IntDeltaBP:
		w, err := s.catalog.NewDeltaBinaryPacked32(s.props)
		return w, StrategyDeltaBinaryPacked, err
	case config.IntRLE:
		bitLength, err := policy.BitLength()
		if err != nil {
			return nil, 0, err
		}
		w, err := s.catalog.NewRLE(bitLength, s.props)

		return w, StrategyRLE, err
	case config.IntPlain:
		w, err := s.catalog.NewPlain(s.props)
		return w, StrategyPlain, err
	case config.IntDictionaryDefault:
		w, err := s.withDictionary(desc, s.catalog.NewDeltaBinaryPacked32)
		return w, StrategyDictionary, err
	default:
		return nil, 0, fmt.Errorf("%w: unknown int encoding %d", errs.ErrInvalidConfiguration, policy.IntEncoding)
	}
}

// withDictionary builds the fallback writer, then the dictionary writer, and joins
// them in a fallback.Writer.
func (s *Selector) withDictionary(
	desc column.Descriptor,
	newFallback func(encoding.Properties) (encoding.ValuesWriter, error),
) (encoding.ValuesWriter, error) {
	fb, err := newFallback(s.props)
	if err != nil {
		return nil, err
	}

	dict, err := s.catalog.NewDictionary(desc.Type, desc.TypeLength, s.props)
	if err != nil {
		fb.Finish()
		return nil, err
	}

	typ := desc.Type
	w, err := fallback.New(dict, fb,
		fallback.WithLogger(s.logger),
		fallback.WithColumn(desc.PathString()),
		fallback.WithOnFallback(func(tr fallback.Transition) {
			s.metrics.observeFallback(typ, tr.Reason)
		}),
	)
	if err != nil {
		dict.Finish()
		fb.Finish()

		return nil, err
	}

	return w, nil
}
