// Package matrix holds the integer cost matrices consumed by the route optimizer.
//
// A cost matrix is an N×N table of non-negative integer travel costs
// (meters, seconds, or any other additive unit). Entry (i, j) is the cost of
// travelling from location i to location j; the table need not be symmetric.
//
// The package provides:
//
//   - Matrix, a read-only view (Rows, Cols, At) that solvers accept.
//   - Dense, a row-major []int64 implementation with bounds-checked At/Set.
//   - NewFromRows / NewFromFloatRows, which ingest caller data (Go slices or
//     decoded JSON numbers) and reject ragged or fractional input.
//
// Structural rules of a *valid* cost matrix (square, zero diagonal, no
// negative entries) are enforced by the consumer, see package tsp.
package matrix
