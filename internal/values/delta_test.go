package values

import (
	"math"
	"math/rand"
	"testing"

	"github.com/parquet-go/parquet-go/encoding/delta"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/errs"
	"github.com/arloliu/encsel/format"
)

func TestDeltaBinaryPackedWriter_Empty(t *testing.T) {
	w := NewDeltaBinaryPackedInt64Writer(encoding.DefaultProperties())
	defer w.Finish()
	require.Equal(t, format.DeltaBinaryPacked, w.Encoding())

	data, err := w.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, data, "an empty page still carries the header")

	got, err := (&delta.BinaryPackedEncoding{}).DecodeInt64(nil, data)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDeltaBinaryPackedWriter_Int32RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name string
		gen  func(i int) int32
	}{
		{"ascending", func(i int) int32 { return int32(i * 3) }},
		{"descending", func(i int) int32 { return int32(1000 - i) }},
		{"random", func(int) int32 { return rng.Int31() - math.MaxInt32/2 }},
		{"extremes", func(i int) int32 {
			if i%2 == 0 {
				return math.MaxInt32
			}
			return math.MinInt32
		}},
		{"constant", func(int) int32 { return 42 }},
	}

	for _, tt := range tests {
		for _, n := range []int{1, 2, 127, 128, 129, 1000} {
			w := NewDeltaBinaryPackedInt32Writer(encoding.DefaultProperties())

			want := make([]int32, n)
			for i := range want {
				want[i] = tt.gen(i)
				require.NoError(t, w.WriteInt32(want[i]))
			}

			data, err := w.Bytes()
			require.NoError(t, err)

			got, err := (&delta.BinaryPackedEncoding{}).DecodeInt32(nil, data)
			require.NoError(t, err, "%s/%d", tt.name, n)
			require.Equal(t, want, got, "%s/%d", tt.name, n)

			w.Finish()
		}
	}
}

func TestDeltaBinaryPackedWriter_Int64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	w := NewDeltaBinaryPackedInt64Writer(encoding.DefaultProperties())
	defer w.Finish()

	want := []int64{math.MinInt64, math.MaxInt64, 0, -1}
	for range 600 {
		want = append(want, rng.Int63()-rng.Int63())
	}
	for _, v := range want {
		require.NoError(t, w.WriteInt64(v))
	}
	require.Equal(t, 8*len(want), w.BufferedSize())

	data, err := w.Bytes()
	require.NoError(t, err)

	got, err := (&delta.BinaryPackedEncoding{}).DecodeInt64(nil, data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDeltaBinaryPackedWriter_SortedIsSmall(t *testing.T) {
	w := NewDeltaBinaryPackedInt64Writer(encoding.DefaultProperties())
	defer w.Finish()

	for i := range int64(1000) {
		require.NoError(t, w.WriteInt64(1_700_000_000_000+i))
	}

	data, err := w.Bytes()
	require.NoError(t, err)
	require.Less(t, len(data), w.BufferedSize()/20)
}

func TestDeltaBinaryPackedWriter_KindAndLifecycle(t *testing.T) {
	w32 := NewDeltaBinaryPackedInt32Writer(encoding.DefaultProperties())
	defer w32.Finish()
	w64 := NewDeltaBinaryPackedInt64Writer(encoding.DefaultProperties())
	defer w64.Finish()

	require.ErrorIs(t, w32.WriteInt64(1), errs.ErrUnsupportedValue)
	require.ErrorIs(t, w64.WriteInt32(1), errs.ErrUnsupportedValue)
	require.ErrorIs(t, w64.WriteByteArray([]byte("a")), errs.ErrUnsupportedValue)

	require.NoError(t, w32.WriteInt32(10))
	first, err := w32.Bytes()
	require.NoError(t, err)
	first = append([]byte(nil), first...)
	require.ErrorIs(t, w32.WriteInt32(11), errs.ErrPageSealed)

	w32.Reset()
	require.NoError(t, w32.WriteInt32(10))
	second, err := w32.Bytes()
	require.NoError(t, err)
	require.Equal(t, first, second)

	w32.Finish()
	require.ErrorIs(t, w32.WriteInt32(1), errs.ErrWriterFinished)
	require.Equal(t, 0, w32.AllocatedSize())
}

func TestDeltaLengthByteArrayWriter_RoundTrip(t *testing.T) {
	w := NewDeltaLengthByteArrayWriter(encoding.DefaultProperties())
	defer w.Finish()

	want := [][]byte{[]byte("Hello"), []byte("World"), []byte("Foobar"), []byte("ABCDEF"), {}}
	for _, v := range want {
		require.NoError(t, w.WriteByteArray(v))
	}
	require.Equal(t, format.DeltaLengthByteArray, w.Encoding())

	data, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, "HelloWorldFoobarABCDEF", string(data[len(data)-22:]))

	got := decodeByteArrays(t, &delta.LengthByteArrayEncoding{}, data)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, string(want[i]), string(got[i]))
	}

	require.ErrorIs(t, w.WriteInt32(1), errs.ErrUnsupportedValue)
}

func TestDeltaByteArrayWriter_RoundTrip(t *testing.T) {
	w := NewDeltaByteArrayWriter(encoding.DefaultProperties())
	defer w.Finish()

	want := []string{"axis", "axle", "babble", "babyhood", "babyhood", "", "b"}
	for _, v := range want {
		require.NoError(t, w.WriteByteArray([]byte(v)))
	}
	require.Equal(t, format.DeltaByteArray, w.Encoding())

	data, err := w.Bytes()
	require.NoError(t, err)

	got := decodeByteArrays(t, &delta.ByteArrayEncoding{}, data)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i], string(got[i]))
	}
}

func TestDeltaByteArrayWriter_CopiesInput(t *testing.T) {
	w := NewDeltaByteArrayWriter(encoding.DefaultProperties())
	defer w.Finish()

	buf := []byte("prefix-1")
	require.NoError(t, w.WriteByteArray(buf))
	copy(buf, "XXXXXX-2")
	require.NoError(t, w.WriteByteArray([]byte("prefix-2")))

	data, err := w.Bytes()
	require.NoError(t, err)
	got := decodeByteArrays(t, &delta.ByteArrayEncoding{}, data)
	require.Equal(t, "prefix-1", string(got[0]))
	require.Equal(t, "prefix-2", string(got[1]))
}

func TestDeltaByteArrayWriter_PagesAreIndependent(t *testing.T) {
	w := NewDeltaByteArrayWriter(encoding.DefaultProperties())
	defer w.Finish()

	require.NoError(t, w.WriteByteArray([]byte("shared")))
	first, err := w.Bytes()
	require.NoError(t, err)
	first = append([]byte(nil), first...)

	w.Reset()
	require.NoError(t, w.WriteByteArray([]byte("shared")))
	second, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, first, second)

	got := decodeByteArrays(t, &delta.ByteArrayEncoding{}, second)
	require.Equal(t, [][]byte{[]byte("shared")}, got)
}
