// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Matrix is a rectangular-ish array of integers. Rows may differ in length.
type Matrix [][]int64

// Width returns the maximum row length.
func (m Matrix) Width() int {
	mx := 0
	for _, row := range m {
		if len(row) > mx {
			mx = len(row)
		}
	}
	return mx
}

// Mode selects how rows that are shorter than the widest row are treated.
type Mode string

const (
	// ModeWidest sums only rows whose length equals the maximum row length.
	ModeWidest Mode = "widest"

	// ModeStrict requires a square matrix.
	ModeStrict Mode = "strict"
)

// Result holds the outcome of a diagonal difference computation.
type Result struct {
	// Primary is the sum of elements walked at increasing column indexes.
	Primary int64 `json:"primary" yaml:"primary"`

	// Secondary is the sum of elements walked at decreasing column indexes.
	Secondary int64 `json:"secondary" yaml:"secondary"`

	// Difference is |Primary - Secondary|.
	Difference int64 `json:"difference" yaml:"difference"`

	// Width is the maximum row length found in the input.
	Width int `json:"width" yaml:"width"`

	// RowsUsed counts rows that contributed to the sums.
	RowsUsed int `json:"rows_used" yaml:"rows_used"`

	// RowsSkipped counts rows shorter than Width.
	RowsSkipped int `json:"rows_skipped" yaml:"rows_skipped"`
}

// Run is one recorded computation in the run history.
type Run struct {
	ID         int64     `json:"id" yaml:"id"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	Source     string    `json:"source" yaml:"source"`
	Digest     string    `json:"digest" yaml:"digest"`
	Mode       Mode      `json:"mode" yaml:"mode"`
	Rows       int       `json:"rows" yaml:"rows"`
	Width      int       `json:"width" yaml:"width"`
	Difference int64     `json:"difference" yaml:"difference"`
}
