// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagonal computes the absolute difference between the sums of a
// matrix's two diagonals.
package diagonal

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/diagdiff/pkg/types"
)

var (
	// ErrNotSquare is returned in strict mode when the input is not k rows of length k.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrIndexOutOfRange is returned when there are more full-width rows than
	// the width, so the diagonal walk leaves the row.
	ErrIndexOutOfRange = errors.New("diagonal index out of range")

	// ErrUnknownMode is returned for a Mode other than widest or strict.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrOverflow is returned when a sum or the difference does not fit in an int64.
	ErrOverflow = errors.New("int64 overflow")
)

// Compute walks m and returns the diagonal sums and their absolute difference.
//
// Only rows whose length equals the widest row take part. The first such row
// contributes its element at column 0 to the primary sum and its element at
// column width-1 to the secondary sum; each following full-width row moves
// both columns one step inward. Shorter rows are skipped entirely and counted
// in Result.RowsSkipped. For a square matrix this is the usual main and anti
// diagonal.
func Compute(m types.Matrix, mode types.Mode) (types.Result, error) {
	switch mode {
	case types.ModeWidest, "":
	case types.ModeStrict:
		if err := checkSquare(m); err != nil {
			return types.Result{}, err
		}
	default:
		return types.Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	mx := m.Width()
	res := types.Result{Width: mx}

	i, j := 0, mx-1
	for row, r := range m {
		if len(r) != mx {
			res.RowsSkipped++
			continue
		}
		if mx == 0 {
			res.RowsUsed++
			continue
		}
		if i >= mx || j < 0 {
			return types.Result{}, fmt.Errorf("%w: row %d is full-width row %d of a width-%d matrix",
				ErrIndexOutOfRange, row, res.RowsUsed+1, mx)
		}
		var ok bool
		if res.Primary, ok = add(res.Primary, r[i]); !ok {
			return types.Result{}, fmt.Errorf("%w: primary sum at row %d", ErrOverflow, row)
		}
		if res.Secondary, ok = add(res.Secondary, r[j]); !ok {
			return types.Result{}, fmt.Errorf("%w: secondary sum at row %d", ErrOverflow, row)
		}
		res.RowsUsed++
		i++
		j--
	}

	d, ok := sub(res.Primary, res.Secondary)
	if !ok {
		return types.Result{}, fmt.Errorf("%w: %d - %d", ErrOverflow, res.Primary, res.Secondary)
	}
	if d == math.MinInt64 {
		return types.Result{}, fmt.Errorf("%w: |%d|", ErrOverflow, d)
	}
	res.Difference = abs(d)
	return res, nil
}

// Difference is shorthand for Compute in widest mode returning only the difference.
func Difference(m types.Matrix) (int64, error) {
	res, err := Compute(m, types.ModeWidest)
	if err != nil {
		return 0, err
	}
	return res.Difference, nil
}

// Primary returns the sum of m[i][i] over a square matrix.
func Primary(m types.Matrix) (int64, error) {
	if err := checkSquare(m); err != nil {
		return 0, err
	}
	var (
		sum int64
		ok  bool
	)
	for i := range m {
		if sum, ok = add(sum, m[i][i]); !ok {
			return 0, fmt.Errorf("%w: primary sum at row %d", ErrOverflow, i)
		}
	}
	return sum, nil
}

// Secondary returns the sum of m[i][n-1-i] over a square matrix.
func Secondary(m types.Matrix) (int64, error) {
	if err := checkSquare(m); err != nil {
		return 0, err
	}
	n := len(m)
	var (
		sum int64
		ok  bool
	)
	for i := range m {
		if sum, ok = add(sum, m[i][n-1-i]); !ok {
			return 0, fmt.Errorf("%w: secondary sum at row %d", ErrOverflow, i)
		}
	}
	return sum, nil
}

func checkSquare(m types.Matrix) error {
	n := len(m)
	for i, r := range m {
		if len(r) != n {
			return fmt.Errorf("%w: row %d has %d elements, want %d", ErrNotSquare, i, len(r), n)
		}
	}
	return nil
}

// add returns a+b and false if the sum wrapped.
func add(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// sub returns a-b and false if the difference wrapped.
func sub(a, b int64) (int64, bool) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, false
	}
	return d, true
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
