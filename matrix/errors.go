// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All constructors and accessors return these sentinels (possibly wrapped with
// call-site context via %w); callers match them with errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrEmpty is returned when a constructor receives no rows at all.
	ErrEmpty = errors.New("matrix: no rows")

	// ErrRagged is returned when input rows have different lengths.
	ErrRagged = errors.New("matrix: rows have different lengths")

	// ErrNonInteger signals a NaN, ±Inf or fractional value where an
	// integer cost is required.
	ErrNonInteger = errors.New("matrix: value is not an integer")
)
