package values

import (
	"github.com/parquet-go/parquet-go/encoding/delta"

	"github.com/arloliu/encsel/encoding"
)

// DeltaBinaryPackedWriter writes DELTA_BINARY_PACKED pages of int32 or int64
// values. A writer takes one of the two kinds, fixed at construction.
type DeltaBinaryPackedWriter struct {
	pageWriter
}

var _ encoding.ValuesWriter = (*DeltaBinaryPackedWriter)(nil)

// NewDeltaBinaryPackedInt32Writer creates a delta writer for int32 values.
// Deltas wrap in 32-bit arithmetic.
func NewDeltaBinaryPackedInt32Writer(props encoding.Properties) *DeltaBinaryPackedWriter {
	return &DeltaBinaryPackedWriter{
		pageWriter: newPageWriter("delta binary packed int32", &delta.BinaryPackedEncoding{}, props, kindInt32, kindInt32),
	}
}

// NewDeltaBinaryPackedInt64Writer creates a delta writer for int64 values.
func NewDeltaBinaryPackedInt64Writer(props encoding.Properties) *DeltaBinaryPackedWriter {
	return &DeltaBinaryPackedWriter{
		pageWriter: newPageWriter("delta binary packed int64", &delta.BinaryPackedEncoding{}, props, kindInt64, kindInt64),
	}
}

// DeltaLengthByteArrayWriter writes DELTA_LENGTH_BYTE_ARRAY pages: the value lengths
// delta binary packed, followed by the concatenated values.
type DeltaLengthByteArrayWriter struct {
	pageWriter
}

var _ encoding.ValuesWriter = (*DeltaLengthByteArrayWriter)(nil)

// NewDeltaLengthByteArrayWriter creates a delta length byte array writer.
func NewDeltaLengthByteArrayWriter(props encoding.Properties) *DeltaLengthByteArrayWriter {
	return &DeltaLengthByteArrayWriter{
		pageWriter: newPageWriter("delta length byte array", &delta.LengthByteArrayEncoding{}, props, kindBytes, kindBytes),
	}
}

// DeltaByteArrayWriter writes DELTA_BYTE_ARRAY (incremental) pages. Each value is
// stored as the length of the prefix it shares with the previous value plus the
// remaining suffix.
//
// It takes byte array, fixed-length byte array and int96 values. Prefix sharing
// starts over on every page.
type DeltaByteArrayWriter struct {
	pageWriter
}

var _ encoding.ValuesWriter = (*DeltaByteArrayWriter)(nil)

// NewDeltaByteArrayWriter creates a delta byte array writer.
func NewDeltaByteArrayWriter(props encoding.Properties) *DeltaByteArrayWriter {
	return &DeltaByteArrayWriter{
		pageWriter: newPageWriter("delta byte array", &delta.ByteArrayEncoding{}, props, kindBytes, kindBytes),
	}
}
