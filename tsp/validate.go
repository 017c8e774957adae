// Package tsp - validation of cost matrices, depots and tours.
//
// Every public entry point funnels its matrix through loadCostTable, which
// checks the data-model invariants once and snapshots the entries into a flat
// table the solvers read without interface calls.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input, only sentinel errors from types.go.
//   - O(n²) worst-case where n is the matrix size.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tourplan/matrix"
)

// loadCostTable verifies dist and copies it into a costTable.
//
// Checks, in order:
//   - nil or 0×0 ⇒ ErrEmptyInstance,
//   - rows ≠ cols ⇒ ErrNonSquare,
//   - cost(i,i) ≠ 0 ⇒ ErrNonZeroDiagonal,
//   - cost(i,j) < 0 ⇒ ErrNegativeCost,
//   - cost(i,j) > MaxInt64/(n+1) ⇒ ErrCostOverflow.
//
// Complexity: O(n²) time, O(n²) space.
func loadCostTable(dist matrix.Matrix) (*costTable, error) {
	if dist == nil {
		return nil, ErrEmptyInstance
	}
	var (
		nr = dist.Rows()
		nc = dist.Cols()
	)
	if nr == 0 && nc == 0 {
		return nil, ErrEmptyInstance
	}
	if nr != nc || nr < 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrNonSquare, nr, nc)
	}

	var (
		n     = nr
		limit = math.MaxInt64 / int64(n+1)
		w     = make([]int64, n*n)
		i, j  int
		v     int64
		err   error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, err = dist.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%w: read cost(%d,%d): %v", ErrNonSquare, i, j, err)
			}
			switch {
			case i == j && v != 0:
				return nil, fmt.Errorf("%w: cost(%d,%d)=%d", ErrNonZeroDiagonal, i, j, v)
			case v < 0:
				return nil, fmt.Errorf("%w: cost(%d,%d)=%d", ErrNegativeCost, i, j, v)
			case v > limit:
				return nil, fmt.Errorf("%w: cost(%d,%d)=%d", ErrCostOverflow, i, j, v)
			}
			w[i*n+j] = v
		}
	}

	return &costTable{n: n, w: w}, nil
}

// validateDepot verifies that depot ∈ [0, n).
//
// Complexity: O(1).
func validateDepot(n, depot int) error {
	if depot < 0 || depot >= n {
		return fmt.Errorf("%w: depot %d, n=%d", ErrDepotOutOfRange, depot, n)
	}

	return nil
}

// loadInstance validates options, matrix and depot together and returns the
// normalized options alongside the cost table.
//
// Complexity: O(n²).
func loadInstance(dist matrix.Matrix, depot int, opts Options) (*costTable, Options, error) {
	norm, err := opts.normalized()
	if err != nil {
		return nil, Options{}, err
	}
	ct, err := loadCostTable(dist)
	if err != nil {
		return nil, Options{}, err
	}
	if err = validateDepot(ct.n, depot); err != nil {
		return nil, Options{}, err
	}

	return ct, norm, nil
}
