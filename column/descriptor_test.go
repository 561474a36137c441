package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/encsel/format"
)

func TestNew(t *testing.T) {
	path := []string{"a", "b"}
	d := New(format.Int64, path...)
	path[0] = "z"

	require.Equal(t, []string{"a", "b"}, d.Path, "descriptor must not alias the caller's path")
	require.Equal(t, format.Int64, d.Type)
	require.Equal(t, "a.b", d.PathString())
	require.Equal(t, "a.b INT64", d.String())
}

func TestNewFixedLen(t *testing.T) {
	d := NewFixedLen(16, "uuid")

	require.Equal(t, format.FixedLenByteArray, d.Type)
	require.Equal(t, 16, d.TypeLength)
}
