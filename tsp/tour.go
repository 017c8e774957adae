// Package tsp - tour utilities shared by exact/heuristic solvers.
//
// This file contains compact utilities that operate purely on tour structure
// (index sequences), without depending on cost matrices:
//   - ValidateTour: enforce the closed-tour invariants.
//   - closeTour / trivialTour: build tours around a fixed depot.
//   - reverseArcInPlace: in-place segment reversal (2-opt core).
//   - CopyTour: independent copy of a tour slice.
//   - DebugString: compact printable representation for tests/debug.
//
// Design:
//   - No logging, no panics on user input, only sentinel errors from types.go.
//   - O(n) time for every helper; in-place mutations avoid extra allocations.
package tsp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateTour enforces the closed-tour invariants:
//
//	len(tour) == n+1, tour[0] == tour[n] == depot,
//	each index v ∈ [0..n-1] appears exactly once in positions [0..n-1].
//
// Returns nil if valid, otherwise ErrInvalidTour (or ErrDepotOutOfRange)
// wrapped with the first violation found.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int, depot int) error {
	if n <= 0 {
		return fmt.Errorf("%w: n=%d", ErrInvalidTour, n)
	}
	if depot < 0 || depot >= n {
		return fmt.Errorf("%w: depot %d, n=%d", ErrDepotOutOfRange, depot, n)
	}
	if len(tour) != n+1 {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidTour, len(tour), n+1)
	}
	if tour[0] != depot || tour[n] != depot {
		return fmt.Errorf("%w: endpoints %d…%d, want depot %d", ErrInvalidTour, tour[0], tour[n], depot)
	}

	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return fmt.Errorf("%w: index %d at position %d", ErrInvalidTour, v, i)
		}
		if seen[v] {
			return fmt.Errorf("%w: index %d repeated at position %d", ErrInvalidTour, v, i)
		}
		seen[v] = true
	}

	return nil
}

// closeTour returns [depot, interior..., depot] in a fresh slice.
//
// Complexity: O(n) time, O(n) space.
func closeTour(depot int, interior []int) []int {
	out := make([]int, len(interior)+2)
	out[0] = depot
	copy(out[1:], interior)
	out[len(out)-1] = depot

	return out
}

// trivialTour returns the only tour of a single-node instance.
func trivialTour(depot int) []int {
	return []int{depot, depot}
}

// nonDepot returns {0..n-1} \ {depot} in ascending order.
//
// Complexity: O(n).
func nonDepot(n, depot int) []int {
	out := make([]int, 0, n-1)
	var v int
	for v = 0; v < n; v++ {
		if v != depot {
			out = append(out, v)
		}
	}

	return out
}

// reverseArcInPlace reverses the inclusive segment tour[i..k] in place,
// keeping both depot occurrences intact. This is the primitive used by 2-opt.
//
// Contracts (trusted, checked by callers):
//   - The tour is closed: len(tour)==n+1 and tour[0]==tour[n].
//   - Indices satisfy: 1 ≤ i < k ≤ n-1.
//
// Complexity: O(k-i) time, O(1) space.
func reverseArcInPlace(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// CopyTour returns an independent copy of the input tour slice.
//
// Complexity: O(n) time, O(n) space.
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)

	return out
}

// DebugString returns a compact printable representation for tests/debug,
// e.g. "[0 3 1 2 | 0]" where the vertical bar marks the closure.
//
// Complexity: O(n) time, O(n) space for formatting.
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}
	var (
		n  = len(tour) - 1
		sb strings.Builder
		i  int
	)
	sb.WriteByte('[')
	for i = 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(tour[i]))
	}
	sb.WriteString(" | ")
	sb.WriteString(strconv.Itoa(tour[n]))
	sb.WriteByte(']')

	return sb.String()
}
