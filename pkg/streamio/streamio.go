// Package streamio reads numeric streams for the heapkit commands.
//
// Input is a sequence of numbers separated by whitespace or commas. Files
// ending in ".lz4" are decompressed transparently.
package streamio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pierrec/lz4/v4"
)

const (
	// StdinPath selects standard input.
	StdinPath = "-"

	lz4Suffix = ".lz4"

	// maxTokenBytes caps a single number token.
	maxTokenBytes = 1 << 10
)

var (
	// ErrInputTooLarge is returned when input exceeds the configured byte limit.
	ErrInputTooLarge = errors.New("streamio: input exceeds size limit")

	// ErrBadNumber is returned for a token that does not parse as a number.
	ErrBadNumber = errors.New("streamio: not a number")
)

// Open opens path for reading. StdinPath returns stdin wrapped in a no-op
// closer. Paths ending in ".lz4" are wrapped in an LZ4 frame reader.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	if !strings.HasSuffix(path, lz4Suffix) {
		return f, nil
	}

	return &lz4File{Reader: lz4.NewReader(f), file: f}, nil
}

type lz4File struct {
	*lz4.Reader

	file *os.File
}

func (lf *lz4File) Close() error {
	return lf.file.Close()
}

// Scan reads numbers from r and calls fn for each in order. It stops at the
// first error from parsing, the size limit, or fn.
func Scan(r io.Reader, maxBytes int64, fn func(float64) error) error {
	limited := &limitReader{r: r, remaining: maxBytes}

	scanner := bufio.NewScanner(limited)
	scanner.Buffer(make([]byte, 0, maxTokenBytes), maxTokenBytes)
	scanner.Split(splitNumbers)

	for scanner.Scan() {
		// A token cut by the limit is not a real number.
		if limited.exceeded {
			break
		}

		v, err := ParseNumber(scanner.Text())
		if err != nil {
			return err
		}

		if err = fn(v); err != nil {
			return err
		}
	}

	if limited.exceeded {
		return fmt.Errorf("%w: %d bytes", ErrInputTooLarge, maxBytes)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	return nil
}

// ReadNumbers reads every number from r.
func ReadNumbers(r io.Reader, maxBytes int64) ([]float64, error) {
	var out []float64

	err := Scan(r, maxBytes, func(v float64) error {
		out = append(out, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ParseArgs parses command-line arguments, each of which may itself hold
// several comma-separated numbers.
func ParseArgs(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))

	for _, arg := range args {
		for field := range strings.FieldsFuncSeq(arg, isSeparator) {
			v, err := ParseNumber(field)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}
	}

	return out, nil
}

// ParseNumber parses a single decimal or scientific-notation token.
// NaN and infinities are rejected: heaps need totally ordered values.
func ParseNumber(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, token)
	}

	return v, nil
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// splitNumbers is a bufio.SplitFunc yielding tokens between separators.
// It decodes whole runes so it splits exactly where ParseArgs does.
func splitNumbers(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0

	for start < len(data) {
		if !atEOF && !utf8.FullRune(data[start:]) {
			return start, nil, nil
		}

		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}

		start += width
	}

	for i := start; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			break
		}

		r, width := utf8.DecodeRune(data[i:])
		if isSeparator(r) {
			return i + width, data[start:i], nil
		}

		i += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// limitReader is io.LimitReader that remembers whether the limit was hit.
type limitReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (lr *limitReader) Read(p []byte) (int, error) {
	if lr.remaining <= 0 {
		// Probe one byte to tell "exactly at limit" from "over limit".
		var probe [1]byte

		n, err := lr.r.Read(probe[:])
		if n > 0 {
			lr.exceeded = true

			return 0, io.EOF
		}

		return 0, err
	}

	if int64(len(p)) > lr.remaining {
		p = p[:lr.remaining]
	}

	n, err := lr.r.Read(p)
	lr.remaining -= int64(n)

	return n, err
}
