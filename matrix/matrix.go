// Package matrix defines the read-only Matrix view used by solvers.
//
// Complexity:
//
//	Rows() and Cols() run in O(1) time.
//	At() performs bounds checking in O(1) time, returning an error on invalid indices.
package matrix

// Matrix is a two-dimensional read-only table of int64 costs.
// Implementations must be safe for concurrent reads.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrIndexOutOfBounds if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (int64, error)
}
