// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matrixio

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diagdiff/pkg/types"
)

func TestReadText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Matrix
		errIs error
	}{
		{
			name:  "3x3",
			input: "3\n1 2 3\n4 5 6\n9 8 9\n",
			want:  types.Matrix{{1, 2, 3}, {4, 5, 6}, {9, 8, 9}},
		},
		{
			name:  "no trailing newline and extra spacing",
			input: "2\n  1\t-2 \n3   4",
			want:  types.Matrix{{1, -2}, {3, 4}},
		},
		{
			name:  "leading blank lines before count",
			input: "\n\n1\n5\n",
			want:  types.Matrix{{5}},
		},
		{
			name:  "ragged rows preserved",
			input: "3\n1 2 3\n4\n5 6 7\n",
			want:  types.Matrix{{1, 2, 3}, {4}, {5, 6, 7}},
		},
		{
			name:  "trailing lines ignored",
			input: "1\n7\nnot a row\n",
			want:  types.Matrix{{7}},
		},
		{
			name:  "zero rows",
			input: "0\n",
			want:  types.Matrix{},
		},
		{
			name:  "too few rows",
			input: "3\n1 2 3\n4 5 6\n",
			errIs: ErrShortInput,
		},
		{
			name:  "empty input",
			input: "",
			errIs: ErrMissingCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadText(strings.NewReader(tt.input))
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadText_ParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantTok  string
	}{
		{name: "bad count", input: "three\n1 2 3\n", wantLine: 1, wantTok: "three"},
		{name: "negative count", input: "-1\n", wantLine: 1, wantTok: "-1"},
		{name: "bad token", input: "2\n1 2\n3 x\n", wantLine: 3, wantTok: "x"},
		{name: "float token", input: "1\n1.5\n", wantLine: 2, wantTok: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.Equal(t, tt.wantTok, pe.Token)
		})
	}
}

func TestReadYAML(t *testing.T) {
	got, err := ReadYAML(strings.NewReader("rows:\n  - [1, 2, 3]\n  - [4, 5, 6]\n  - [9, 8, 9]\n"))
	require.NoError(t, err)
	assert.Equal(t, types.Matrix{{1, 2, 3}, {4, 5, 6}, {9, 8, 9}}, got)

	got, err = ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadYAML(strings.NewReader("columns: [[1]]\n"))
	assert.Error(t, err)
}

func TestRead_Dispatch(t *testing.T) {
	got, err := Read(strings.NewReader("1\n5\n"), "")
	require.NoError(t, err)
	assert.Equal(t, types.Matrix{{5}}, got)

	got, err = Read(strings.NewReader("rows: [[5]]\n"), types.InputYAML)
	require.NoError(t, err)
	assert.Equal(t, types.Matrix{{5}}, got)

	_, err = Read(strings.NewReader(""), "csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDigest(t *testing.T) {
	a := Digest(types.Matrix{{1, 2}, {3}})
	b := Digest(types.Matrix{{1}, {2, 3}})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Digest(types.Matrix{{1, 2}, {3}}))
	assert.Len(t, a, 64)
}
