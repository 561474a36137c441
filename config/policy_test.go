package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/encsel/errs"
)

func TestParseIntEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want IntEncoding
	}{
		{"", IntDictionaryDefault},
		{"BP", IntBP},
		{"bp", IntBP},
		{"DeltaBP", IntDeltaBP},
		{" RLE ", IntRLE},
		{"plain", IntPlain},
		{"dictionary", IntDictionaryDefault},
	}
	for _, tt := range tests {
		got, err := ParseIntEncoding(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseIntEncoding("DELTA")
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestParseStringEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want StringEncoding
	}{
		{"", StringDictionaryDefault},
		{"DELTAL", StringDeltaLength},
		{"deltal", StringDeltaLength},
		{"DELTA", StringDelta},
		{"Plain", StringPlain},
	}
	for _, tt := range tests {
		got, err := ParseStringEncoding(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseStringEncoding("BP")
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestEncodingNames_RoundTrip(t *testing.T) {
	for _, e := range []IntEncoding{IntDictionaryDefault, IntBP, IntDeltaBP, IntRLE, IntPlain} {
		got, err := ParseIntEncoding(e.String())
		require.NoError(t, err)
		require.Equal(t, e, got)
	}
	for _, e := range []StringEncoding{StringDictionaryDefault, StringDeltaLength, StringDelta, StringPlain} {
		got, err := ParseStringEncoding(e.String())
		require.NoError(t, err)
		require.Equal(t, e, got)
	}
	require.Equal(t, "Unknown", IntEncoding(42).String())
	require.Equal(t, "Unknown", StringEncoding(42).String())
}

func TestParsePolicy(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		p, err := ParsePolicy(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultPolicy(), p)
		require.False(t, p.IntBitLength.IsSet())
		require.False(t, p.IntBound.IsSet())
	})

	t.Run("full", func(t *testing.T) {
		p, err := ParsePolicy(map[string]string{
			KeyIntEncoding:    "BP",
			KeyStringEncoding: "DELTA",
			KeyIntBitLength:   "9",
			KeyIntBound:       "300",
		})
		require.NoError(t, err)
		require.Equal(t, IntBP, p.IntEncoding)
		require.Equal(t, StringDelta, p.StringEncoding)

		bitLen, err := p.BitLength()
		require.NoError(t, err)
		require.Equal(t, 9, bitLen)
		bound, err := p.Bound()
		require.NoError(t, err)
		require.Equal(t, 300, bound)
		require.Equal(t, "int=BP string=DELTA bit_length=9 bound=300", p.String())
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := ParsePolicy(map[string]string{KeyIntBitLength: "eight"})
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
		require.Contains(t, err.Error(), KeyIntBitLength)

		_, err = ParsePolicy(map[string]string{KeyIntBound: "1.5"})
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := ParsePolicy(map[string]string{KeyStringEncoding: "ZSTD"})
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	})
}

func TestPolicy_RequiredValues(t *testing.T) {
	p := Policy{IntEncoding: IntBP}

	_, err := p.BitLength()
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	_, err = p.Bound()
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	p.IntBitLength = Int(0)
	_, err = p.BitLength()
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	p.IntBound = Int(-1)
	_, err = p.Bound()
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	p.IntBound = Int(0)
	bound, err := p.Bound()
	require.NoError(t, err)
	require.Equal(t, 0, bound)
}
