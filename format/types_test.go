package format

import (
	"testing"

	pqformat "github.com/parquet-go/parquet-go/format"
	"github.com/stretchr/testify/require"
)

func TestPhysicalType_Valid(t *testing.T) {
	for _, typ := range []PhysicalType{Boolean, Int32, Int64, Int96, Float, Double, ByteArray, FixedLenByteArray} {
		require.True(t, typ.Valid(), typ.String())
	}

	require.False(t, PhysicalType(8).Valid())
	require.False(t, PhysicalType(255).Valid())
	require.Equal(t, "Unknown", PhysicalType(42).String())
}

func TestPhysicalType_Size(t *testing.T) {
	require.Equal(t, 4, Int32.Size())
	require.Equal(t, 4, Float.Size())
	require.Equal(t, 8, Int64.Size())
	require.Equal(t, 8, Double.Size())
	require.Equal(t, 12, Int96.Size())
	require.Equal(t, 0, Boolean.Size())
	require.Equal(t, 0, ByteArray.Size())
}

func TestPhysicalType_Parquet(t *testing.T) {
	require.Equal(t, pqformat.Boolean, Boolean.Parquet())
	require.Equal(t, pqformat.Int32, Int32.Parquet())
	require.Equal(t, pqformat.Int96, Int96.Parquet())
	require.Equal(t, pqformat.ByteArray, ByteArray.Parquet())
	require.Equal(t, pqformat.FixedLenByteArray, FixedLenByteArray.Parquet())
}

func TestParsePhysicalType(t *testing.T) {
	tests := []struct {
		name string
		want PhysicalType
		ok   bool
	}{
		{"int32", Int32, true},
		{"BYTE_ARRAY", ByteArray, true},
		{"binary", ByteArray, true},
		{"flba", FixedLenByteArray, true},
		{"bool", Boolean, true},
		{"decimal", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePhysicalType(tt.name)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodingType(t *testing.T) {
	require.True(t, RLEDictionary.UsesDictionary())
	require.True(t, PlainDictionary.UsesDictionary())
	require.False(t, Plain.UsesDictionary())
	require.False(t, DeltaByteArray.UsesDictionary())

	require.Equal(t, pqformat.Plain, Plain.Parquet())
	require.Equal(t, pqformat.RLE, RLE.Parquet())
	require.Equal(t, pqformat.BitPacked, BitPacked.Parquet())
	require.Equal(t, pqformat.DeltaBinaryPacked, DeltaBinaryPacked.Parquet())
	require.Equal(t, pqformat.RLEDictionary, RLEDictionary.Parquet())

	require.Equal(t, "RLE_DICTIONARY", RLEDictionary.String())
	require.Equal(t, "Unknown", EncodingType(1).String())
}
