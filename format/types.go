// Package format defines the physical value types and wire encoding tags shared by
// every encoder in encsel.
//
// Numeric codes follow the parquet thrift definitions so a tag can be written into
// page headers without translation.
package format

import (
	pqformat "github.com/parquet-go/parquet-go/format"
)

type (
	PhysicalType uint8
	EncodingType uint8
)

const (
	Boolean           PhysicalType = 0 // Boolean represents single-bit values.
	Int32             PhysicalType = 1 // Int32 represents 32-bit signed integers.
	Int64             PhysicalType = 2 // Int64 represents 64-bit signed integers.
	Int96             PhysicalType = 3 // Int96 represents 12-byte legacy timestamps.
	Float             PhysicalType = 4 // Float represents IEEE 754 single precision values.
	Double            PhysicalType = 5 // Double represents IEEE 754 double precision values.
	ByteArray         PhysicalType = 6 // ByteArray represents variable-length byte strings.
	FixedLenByteArray PhysicalType = 7 // FixedLenByteArray represents fixed-width byte strings.

	numPhysicalTypes = 8
)

const (
	Plain                EncodingType = 0 // Plain stores values back to back.
	PlainDictionary      EncodingType = 2 // PlainDictionary is the legacy dictionary encoding.
	RLE                  EncodingType = 3 // RLE is the run-length / bit-packing hybrid.
	BitPacked            EncodingType = 4 // BitPacked is the deprecated big-endian bit-packing.
	DeltaBinaryPacked    EncodingType = 5 // DeltaBinaryPacked stores bit-packed deltas in blocks.
	DeltaLengthByteArray EncodingType = 6 // DeltaLengthByteArray delta-packs lengths, then raw bytes.
	DeltaByteArray       EncodingType = 7 // DeltaByteArray is incremental (front) coding.
	RLEDictionary        EncodingType = 8 // RLEDictionary stores dictionary ids as RLE hybrid runs.
)

// Int96Size is the width in bytes of an Int96 value.
const Int96Size = 12

// Valid reports whether t is one of the recognized physical types.
func (t PhysicalType) Valid() bool {
	return t < numPhysicalTypes
}

// Size returns the encoded width in bytes of a fixed-width physical type.
// It returns 0 for Boolean, ByteArray and FixedLenByteArray, whose width is either
// sub-byte or column specific.
func (t PhysicalType) Size() int {
	switch t {
	case Int32, Float:
		return 4
	case Int64, Double:
		return 8
	case Int96:
		return Int96Size
	default:
		return 0
	}
}

func (t PhysicalType) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "Unknown"
	}
}

// Parquet returns the parquet thrift type with the same code.
func (t PhysicalType) Parquet() pqformat.Type {
	return pqformat.Type(t)
}

// ParsePhysicalType parses a physical type name such as "int32" or "BYTE_ARRAY".
// The second return value is false when the name is not recognized.
func ParsePhysicalType(name string) (PhysicalType, bool) {
	switch name {
	case "boolean", "BOOLEAN", "bool":
		return Boolean, true
	case "int32", "INT32":
		return Int32, true
	case "int64", "INT64":
		return Int64, true
	case "int96", "INT96":
		return Int96, true
	case "float", "FLOAT":
		return Float, true
	case "double", "DOUBLE":
		return Double, true
	case "byte_array", "BYTE_ARRAY", "binary", "BINARY":
		return ByteArray, true
	case "fixed_len_byte_array", "FIXED_LEN_BYTE_ARRAY", "flba":
		return FixedLenByteArray, true
	default:
		return 0, false
	}
}

// UsesDictionary reports whether data pages with this encoding reference a dictionary page.
func (e EncodingType) UsesDictionary() bool {
	return e == PlainDictionary || e == RLEDictionary
}

// Parquet returns the parquet thrift encoding with the same code.
func (e EncodingType) Parquet() pqformat.Encoding {
	return pqformat.Encoding(e)
}

func (e EncodingType) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	default:
		return "Unknown"
	}
}
