package streamio_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapkit/pkg/streamio"
)

const testLimit = 1 << 20

var errStop = errors.New("stop")

func TestReadNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{name: "empty", input: "", want: nil},
		{name: "only_separators", input: " ,\n\t,", want: nil},
		{name: "whitespace", input: "5 3\n8\t1", want: []float64{5, 3, 8, 1}},
		{name: "commas", input: "5,3,,8", want: []float64{5, 3, 8}},
		{name: "mixed", input: "1, 2\n3 ,4\n", want: []float64{1, 2, 3, 4}},
		{name: "floats_and_signs", input: "-1.5 +2 3e2", want: []float64{-1.5, 2, 300}},
		{name: "no_trailing_newline", input: "42", want: []float64{42}},
		{name: "unicode_spaces", input: "1\u00a02\u20283\u0085", want: []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := streamio.ReadNumbers(strings.NewReader(tt.input), testLimit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadNumbers_BadToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		token string
	}{
		{name: "word", input: "1 two 3", token: `"two"`},
		{name: "nan", input: "1 NaN 3", token: `"NaN"`},
		{name: "inf", input: "1,Inf", token: `"Inf"`},
		{name: "signed_inf", input: "-inf 2", token: `"-inf"`},
		{name: "overflow", input: "1e999", token: `"1e999"`},
		// U+00C5 encodes as C3 85; 0x85 alone is a space byte but must not split the rune.
		{name: "multibyte_rune_kept_whole", input: "1 3\u00c5", token: "\"3\u00c5\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := streamio.ReadNumbers(strings.NewReader(tt.input), testLimit)
			require.ErrorIs(t, err, streamio.ErrBadNumber)
			assert.Contains(t, err.Error(), tt.token)
		})
	}
}

func TestReadNumbers_SizeLimit(t *testing.T) {
	t.Parallel()

	input := "1 2 3 4 5"

	got, err := streamio.ReadNumbers(strings.NewReader(input), int64(len(input)))
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = streamio.ReadNumbers(strings.NewReader(input), int64(len(input)-1))
	require.ErrorIs(t, err, streamio.ErrInputTooLarge)
}

func TestScan_StopsOnCallbackError(t *testing.T) {
	t.Parallel()

	var seen []float64

	err := streamio.Scan(strings.NewReader("1 2 3"), testLimit, func(v float64) error {
		seen = append(seen, v)
		if v == 2 {
			return errStop
		}

		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, []float64{1, 2}, seen)
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	got, err := streamio.ParseArgs([]string{"5", "3,8", " 1 "})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 3, 8, 1}, got)

	for _, bad := range [][]string{{"5", "x"}, {"NaN", "1"}, {"Inf"}, {"1", "+Inf"}} {
		_, err = streamio.ParseArgs(bad)
		require.ErrorIs(t, err, streamio.ErrBadNumber, "args %q", bad)
	}
}

func TestParseArgs_MatchesScanTokenization(t *testing.T) {
	t.Parallel()

	input := "4\u00a05,6\u00857\t8"

	fromArgs, err := streamio.ParseArgs([]string{input})
	require.NoError(t, err)

	fromScan, err := streamio.ReadNumbers(strings.NewReader(input), testLimit)
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 5, 6, 7, 8}, fromArgs)
	assert.Equal(t, fromArgs, fromScan)
}

func TestOpen_Stdin(t *testing.T) {
	t.Parallel()

	rc, err := streamio.Open(streamio.StdinPath, strings.NewReader("7 8"))
	require.NoError(t, err)

	defer rc.Close()

	got, err := streamio.ReadNumbers(rc, testLimit)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8}, got)
}

func TestOpen_PlainFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "values.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n1\n2\n"), 0o600))

	rc, err := streamio.Open(path, nil)
	require.NoError(t, err)

	defer rc.Close()

	got, err := streamio.ReadNumbers(rc, testLimit)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, got)
}

func TestOpen_LZ4File(t *testing.T) {
	t.Parallel()

	var compressed bytes.Buffer

	zw := lz4.NewWriter(&compressed)
	_, err := io.WriteString(zw, "10,20,30\n40")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "values.txt.lz4")
	require.NoError(t, os.WriteFile(path, compressed.Bytes(), 0o600))

	rc, err := streamio.Open(path, nil)
	require.NoError(t, err)

	defer rc.Close()

	got, err := streamio.ReadNumbers(rc, testLimit)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, got)
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := streamio.Open(filepath.Join(t.TempDir(), "absent.txt"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
