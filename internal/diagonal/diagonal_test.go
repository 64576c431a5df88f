// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diagonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diagdiff/pkg/types"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		m     types.Matrix
		mode  types.Mode
		want  types.Result
		errIs error
	}{
		{
			name: "3x3 example",
			m:    types.Matrix{{1, 2, 3}, {4, 5, 6}, {9, 8, 9}},
			mode: types.ModeWidest,
			want: types.Result{Primary: 15, Secondary: 17, Difference: 2, Width: 3, RowsUsed: 3},
		},
		{
			name: "single element",
			m:    types.Matrix{{5}},
			mode: types.ModeWidest,
			want: types.Result{Primary: 5, Secondary: 5, Difference: 0, Width: 1, RowsUsed: 1},
		},
		{
			name: "classic 3x3 with negatives",
			m:    types.Matrix{{11, 2, 4}, {4, 5, 6}, {10, 8, -12}},
			mode: types.ModeStrict,
			want: types.Result{Primary: 4, Secondary: 19, Difference: 15, Width: 3, RowsUsed: 3},
		},
		{
			name: "empty matrix",
			m:    types.Matrix{},
			mode: types.ModeWidest,
			want: types.Result{},
		},
		{
			name: "empty mode defaults to widest",
			m:    types.Matrix{{1, 2}, {3, 4}},
			mode: "",
			want: types.Result{Primary: 5, Secondary: 5, Difference: 0, Width: 2, RowsUsed: 2},
		},
		{
			name: "short rows skipped entirely",
			m:    types.Matrix{{1, 2, 3}, {100}, {4, 5, 6}, {7, 8}, {9, 8, 9}},
			mode: types.ModeWidest,
			want: types.Result{Primary: 15, Secondary: 17, Difference: 2, Width: 3, RowsUsed: 3, RowsSkipped: 2},
		},
		{
			name: "fewer full-width rows than width",
			m:    types.Matrix{{1, 2, 3, 4}, {5}, {6, 7, 8, 9}},
			mode: types.ModeWidest,
			want: types.Result{Primary: 8, Secondary: 12, Difference: 4, Width: 4, RowsUsed: 2, RowsSkipped: 1},
		},
		{
			name: "all rows empty",
			m:    types.Matrix{{}, {}},
			mode: types.ModeWidest,
			want: types.Result{RowsUsed: 2},
		},
		{
			name: "difference of exactly MaxInt64",
			m:    types.Matrix{{math.MaxInt64, 0}, {0, 0}},
			mode: types.ModeWidest,
			want: types.Result{Primary: math.MaxInt64, Difference: math.MaxInt64, Width: 2, RowsUsed: 2},
		},
		{
			name:  "difference overflows",
			m:     types.Matrix{{math.MaxInt64, -1}, {0, 0}},
			mode:  types.ModeWidest,
			errIs: ErrOverflow,
		},
		{
			name:  "primary sum overflows",
			m:     types.Matrix{{math.MaxInt64, 0}, {0, 1}},
			mode:  types.ModeWidest,
			errIs: ErrOverflow,
		},
		{
			name:  "secondary sum overflows negative",
			m:     types.Matrix{{0, math.MinInt64}, {-1, 0}},
			mode:  types.ModeStrict,
			errIs: ErrOverflow,
		},
		{
			name:  "absolute value of MinInt64",
			m:     types.Matrix{{math.MinInt64, 0}, {0, 0}},
			mode:  types.ModeWidest,
			errIs: ErrOverflow,
		},
		{
			name:  "more full-width rows than width",
			m:     types.Matrix{{1, 2}, {3, 4}, {5, 6}},
			mode:  types.ModeWidest,
			errIs: ErrIndexOutOfRange,
		},
		{
			name:  "strict rejects ragged",
			m:     types.Matrix{{1, 2, 3}, {100}, {4, 5, 6}},
			mode:  types.ModeStrict,
			errIs: ErrNotSquare,
		},
		{
			name:  "unknown mode",
			m:     types.Matrix{{1}},
			mode:  "diagonal-ish",
			errIs: ErrUnknownMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.m, tt.mode)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_SquareMatchesCanonical(t *testing.T) {
	for k := 1; k <= 8; k++ {
		m := make(types.Matrix, k)
		for i := range m {
			m[i] = make([]int64, k)
			for j := range m[i] {
				m[i][j] = int64((i*7+j*13)%19 - 9)
			}
		}

		p, err := Primary(m)
		require.NoError(t, err)
		s, err := Secondary(m)
		require.NoError(t, err)
		want := p - s
		if want < 0 {
			want = -want
		}

		for _, mode := range []types.Mode{types.ModeWidest, types.ModeStrict} {
			got, err := Compute(m, mode)
			require.NoError(t, err)
			assert.Equal(t, want, got.Difference, "k=%d mode=%s", k, mode)
			assert.Equal(t, k, got.RowsUsed)
		}
	}
}

func TestDifference(t *testing.T) {
	d, err := Difference(types.Matrix{{1, 2, 3}, {4, 5, 6}, {9, 8, 9}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), d)

	_, err = Difference(types.Matrix{{1}, {2}})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPrimarySecondary_NotSquare(t *testing.T) {
	_, err := Primary(types.Matrix{{1, 2}})
	assert.ErrorIs(t, err, ErrNotSquare)
	_, err = Secondary(types.Matrix{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestPrimarySecondary_Overflow(t *testing.T) {
	m := types.Matrix{{math.MaxInt64, math.MinInt64}, {math.MinInt64, 1}}
	_, err := Primary(m)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Secondary(m)
	assert.ErrorIs(t, err, ErrOverflow)
}
