// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matrixio reads integer matrices from text and YAML input.
//
// The text format is a row count n on the first non-blank line followed by n
// lines of whitespace-separated integers.
package matrixio

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diagdiff/pkg/types"
)

// maxLineSize bounds a single input line; wide rows can exceed bufio's 64 KiB default.
const maxLineSize = 16 << 20

var (
	// ErrShortInput is returned when the input ends before n rows were read.
	ErrShortInput = errors.New("input ended before all rows were read")

	// ErrMissingCount is returned when the input has no row count line.
	ErrMissingCount = errors.New("missing row count")

	// ErrUnsupportedFormat is returned by Read for an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// ParseError reports a token that is not an integer.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid integer %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read decodes a matrix from r in the given format. An empty format means text.
func Read(r io.Reader, format types.InputFormat) (types.Matrix, error) {
	switch format {
	case types.InputText, "":
		return ReadText(r)
	case types.InputYAML:
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("%w %q: use text or yaml", ErrUnsupportedFormat, format)
	}
}

// ReadText parses the count-prefixed text format. Lines after the n-th row
// are ignored. Blank lines before the count are skipped; blank lines after it
// are empty rows.
func ReadText(r io.Reader) (types.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	n := -1
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Token: text, Err: err}
		}
		if v < 0 {
			return nil, &ParseError{Line: lineNo, Token: text, Err: errors.New("row count must not be negative")}
		}
		n = v
		break
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if n < 0 {
		return nil, ErrMissingCount
	}

	m := make(types.Matrix, 0, n)
	for len(m) < n && sc.Scan() {
		lineNo++
		row, err := parseRow(sc.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		m = append(m, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(m) < n {
		return nil, fmt.Errorf("%w: got %d of %d", ErrShortInput, len(m), n)
	}
	return m, nil
}

func parseRow(line string, lineNo int) ([]int64, error) {
	fields := strings.Fields(line)
	row := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Token: f, Err: err}
		}
		row = append(row, v)
	}
	return row, nil
}

// yamlMatrix is the YAML document shape: a top-level rows list.
type yamlMatrix struct {
	Rows [][]int64 `yaml:"rows"`
}

// ReadYAML parses a YAML document of the form "rows: [[1, 2], [3, 4]]".
func ReadYAML(r io.Reader) (types.Matrix, error) {
	var doc yamlMatrix
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Matrix{}, nil
		}
		return nil, fmt.Errorf("decoding YAML matrix: %w", err)
	}
	return types.Matrix(doc.Rows), nil
}

// Digest returns a stable hex SHA-256 of m. Row boundaries are part of the
// digest, so [[1,2],[3]] and [[1],[2,3]] differ.
func Digest(m types.Matrix) string {
	h := sha256.New()
	for _, row := range m {
		for i, v := range row {
			if i > 0 {
				h.Write([]byte{' '})
			}
			h.Write([]byte(strconv.FormatInt(v, 10)))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
