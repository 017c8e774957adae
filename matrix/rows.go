// SPDX-License-Identifier: MIT
// Package matrix: ingestion of caller-supplied rows.
//
// Two entry points cover the shapes cost data arrives in:
//   - NewFromRows:      [][]int64 built in Go code.
//   - NewFromFloatRows: [][]float64 decoded from JSON/YAML, where every value
//     must still be an exact integer.
//
// Both copy the input; the returned Dense never aliases caller memory.

package matrix

import (
	"fmt"
	"math"
)

// maxExactFloat is the largest magnitude at which every integer is exactly
// representable as float64 (2^53).
const maxExactFloat = 1 << 53

// NewFromRows copies rows into a new Dense. All rows must have the same,
// non-zero length; the result may be non-square (squareness is a solver
// concern, not a storage one).
//
// Errors: ErrEmpty, ErrRagged.
// Complexity: O(r*c).
func NewFromRows(rows [][]int64) (*Dense, error) {
	r, c, err := shapeOf(len(rows), func(i int) int { return len(rows[i]) })
	if err != nil {
		return nil, err
	}
	m := &Dense{r: r, c: c, data: make([]int64, r*c)}
	var i int
	for i = 0; i < r; i++ {
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// NewFromFloatRows converts float rows into a Dense, rejecting NaN, ±Inf,
// fractional values and magnitudes beyond 2^53.
//
// Errors: ErrEmpty, ErrRagged, ErrNonInteger (wrapped with the offending cell).
// Complexity: O(r*c).
func NewFromFloatRows(rows [][]float64) (*Dense, error) {
	r, c, err := shapeOf(len(rows), func(i int) int { return len(rows[i]) })
	if err != nil {
		return nil, err
	}
	m := &Dense{r: r, c: c, data: make([]int64, r*c)}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > maxExactFloat {
				return nil, fmt.Errorf("cell (%d,%d)=%v: %w", i, j, v, ErrNonInteger)
			}
			m.data[i*c+j] = int64(v)
		}
	}

	return m, nil
}

// shapeOf derives (rows, cols) from a row count and a row-length accessor.
func shapeOf(r int, rowLen func(i int) int) (int, int, error) {
	if r == 0 {
		return 0, 0, ErrEmpty
	}
	c := rowLen(0)
	if c == 0 {
		return 0, 0, ErrInvalidDimensions
	}
	var i int
	for i = 1; i < r; i++ {
		if rowLen(i) != c {
			return 0, 0, fmt.Errorf("row %d has %d values, want %d: %w", i, rowLen(i), c, ErrRagged)
		}
	}

	return r, c, nil
}
