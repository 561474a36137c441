package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/encsel/errs"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd, err := newRootCommand(&stdout, &stderr)
	require.NoError(t, err)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()

	return stdout.String(), err
}

func lines(values ...int) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func TestSelectCommand(t *testing.T) {
	t.Run("unaligned bit packing", func(t *testing.T) {
		out, err := run(t, "", "select", "--type", "int32", "--path", "http.status",
			"--int-encoding", "BP", "--int-bit-length", "9", "--int-bound", "300")
		require.NoError(t, err)
		require.Contains(t, out, "column:    http.status")
		require.Contains(t, out, "strategy:  bit_packing_unaligned")
		require.Contains(t, out, "encoding:  BIT_PACKED")
	})

	t.Run("default byte array", func(t *testing.T) {
		out, err := run(t, "", "select", "--type", "BYTE_ARRAY")
		require.NoError(t, err)
		require.Contains(t, out, "strategy:  dictionary")
		require.Contains(t, out, "encoding:  RLE_DICTIONARY")
		require.Contains(t, out, "fallback:  DELTA_BYTE_ARRAY")
	})

	t.Run("env policy", func(t *testing.T) {
		t.Setenv("ENCSEL_STRING_ENCODING", "plain")
		out, err := run(t, "", "select", "--type", "byte_array")
		require.NoError(t, err)
		require.Contains(t, out, "strategy:  plain")
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("ENCSEL_STRING_ENCODING", "plain")
		out, err := run(t, "", "select", "--type", "byte_array", "--string-encoding", "DELTAL")
		require.NoError(t, err)
		require.Contains(t, out, "strategy:  delta_length_byte_array")
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "encsel.yaml")
		require.NoError(t, os.WriteFile(path, []byte("int_encoding: RLE\nint_bit_length: 3\n"), 0o600))

		out, err := run(t, "", "select", "--config", path, "--type", "int32")
		require.NoError(t, err)
		require.Contains(t, out, "strategy:  rle")
		require.Contains(t, out, "encoding:  RLE")
	})

	t.Run("missing bound", func(t *testing.T) {
		_, err := run(t, "", "select", "--type", "int32", "--int-encoding", "BP", "--int-bit-length", "4")
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := run(t, "", "select", "--type", "decimal")
		require.Error(t, err)
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Run("dictionary", func(t *testing.T) {
		values := make([]int, 100)
		for i := range values {
			values[i] = i % 2
		}

		out, err := run(t, lines(values...), "encode", "--type", "int64")
		require.NoError(t, err)
		require.Contains(t, out, "page 0: RLE_DICTIONARY, 100 values")
		require.Contains(t, out, "dictionary: PLAIN, 2 entries, 16 B")
		require.Contains(t, out, "state: DictionaryActive")
		require.NotContains(t, out, "page 1:")
	})

	t.Run("fallback", func(t *testing.T) {
		out, err := run(t, lines(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
			"encode", "--type", "int64", "--dictionary-page-size", "16")
		require.NoError(t, err)
		require.Contains(t, out, "page 0: DELTA_BINARY_PACKED, 10 values")
		require.NotContains(t, out, "dictionary:")
		require.Contains(t, out, "state: FallbackActive")
	})

	t.Run("page cuts", func(t *testing.T) {
		values := make([]int, 30)
		for i := range values {
			values[i] = i % 4
		}

		out, err := run(t, lines(values...), "encode", "--type", "int64", "--page-size", "80")
		require.NoError(t, err)
		require.Contains(t, out, "page 2: RLE_DICTIONARY, 10 values")
		require.NotContains(t, out, "page 3:")
		require.Contains(t, out, "dictionary: PLAIN, 4 entries")
	})

	t.Run("input file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hosts.txt")
		require.NoError(t, os.WriteFile(path, []byte("web-01\nweb-02\nweb-03\n"), 0o600))

		out, err := run(t, "", "encode", "--type", "byte_array", "--string-encoding", "DELTA", "--input", path)
		require.NoError(t, err)
		require.Contains(t, out, "page 0: DELTA_BYTE_ARRAY, 3 values")
		require.Contains(t, out, "total: 3 values")
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := run(t, "1\nx\n", "encode", "--type", "int32")
		require.Error(t, err)
		require.Contains(t, err.Error(), "line 2")
	})

	t.Run("boolean", func(t *testing.T) {
		out, err := run(t, "true\nfalse\ntrue\n", "encode", "--type", "boolean")
		require.NoError(t, err)
		require.Contains(t, out, "page 0: RLE, 3 values")
		require.NotContains(t, out, "state:")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("info", "json", &buf)
	require.NoError(t, err)
	logger.Info("hello")
	logger.Debug("hidden")
	require.Contains(t, buf.String(), `"message":"hello"`)
	require.NotContains(t, buf.String(), "hidden")

	_, err = newLogger("loud", "json", &buf)
	require.Error(t, err)
	_, err = newLogger("info", "xml", &buf)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "encsel v"+version)
}

func TestBindPolicyFlags_MissingFlag(t *testing.T) {
	root := &cobra.Command{Use: "bare"}
	root.PersistentFlags().String("int-encoding", "", "")

	err := bindPolicyFlags(viper.New(), root)
	require.ErrorContains(t, err, "bind --")
}
