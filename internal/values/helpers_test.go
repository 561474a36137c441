package values

import (
	"encoding/binary"
	"testing"

	pqencoding "github.com/parquet-go/parquet-go/encoding"
	"github.com/parquet-go/parquet-go/encoding/rle"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/encsel/encoding"
)

// splitValues cuts a decoded byte array buffer into its values.
func splitValues(data []byte, offsets []uint32) [][]byte {
	if len(offsets) == 0 {
		return nil
	}
	out := make([][]byte, len(offsets)-1)
	for i := range out {
		out[i] = data[offsets[i]:offsets[i+1]]
	}

	return out
}

func decodeByteArrays(t *testing.T, enc pqencoding.Encoding, page []byte) [][]byte {
	t.Helper()

	data, offsets, err := enc.DecodeByteArray(nil, page, nil)
	require.NoError(t, err)

	return splitValues(data, offsets)
}

// decodeRLEPage strips the length prefix of an RLE page and decodes the first n
// values. The decoder pads bit-packed runs to a multiple of 8.
func decodeRLEPage(t *testing.T, page []byte, width, n int) []int32 {
	t.Helper()

	require.GreaterOrEqual(t, len(page), 4)
	require.Equal(t, len(page)-4, int(binary.LittleEndian.Uint32(page)))

	enc := &rle.Encoding{BitWidth: width}
	got, err := enc.DecodeInt32(nil, page[4:])
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), n)

	return got[:n]
}

func decodeDictionaryIDs(t *testing.T, page []byte, n int) []int32 {
	t.Helper()

	got, err := (&rle.DictionaryEncoding{}).DecodeInt32(nil, page)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), n)

	return got[:n]
}

// unpackBits reads n values of width bits from a BIT_PACKED page.
func unpackBits(data []byte, width, n int, order encoding.BitOrder) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		var v uint64
		for b := range width {
			pos := i*width + b
			if order == encoding.BigEndian {
				v = v<<1 | uint64(data[pos/8]>>(7-pos%8))&1
			} else {
				v |= (uint64(data[pos/8]>>(pos%8)) & 1) << b
			}
		}
		out[i] = v
	}

	return out
}
