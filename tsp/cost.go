// Package tsp - cost bookkeeping shared by exact/heuristic solvers.
//
// costTable is an immutable snapshot of a validated cost matrix laid out as a
// flat row-major []int64, so hot loops read w[u*n+v] without interface
// indirection or error returns. It is created once per call and shared
// read-only by every worker goroutine.
//
// Complexity:
//   - at: O(1); tourCost: O(n) for a tour of length n+1, O(1) extra space.
package tsp

import (
	"github.com/katalvlaran/tourplan/matrix"
)

// costTable holds n×n validated costs.
type costTable struct {
	n int
	w []int64
}

// at returns cost(u, v). Indices are trusted.
func (ct *costTable) at(u, v int) int64 {
	return ct.w[u*ct.n+v]
}

// tourCost sums cost(tour[k], tour[k+1]) over consecutive pairs.
//
// Complexity: O(len(tour)).
func (ct *costTable) tourCost(tour []int) int64 {
	var (
		sum int64
		k   int
	)
	for k = 0; k+1 < len(tour); k++ {
		sum += ct.at(tour[k], tour[k+1])
	}

	return sum
}

// isSymmetric reports whether cost(i,j) == cost(j,i) for all pairs.
//
// Complexity: O(n²).
func (ct *costTable) isSymmetric() bool {
	var i, j int
	for i = 0; i < ct.n; i++ {
		for j = i + 1; j < ct.n; j++ {
			if ct.at(i, j) != ct.at(j, i) {
				return false
			}
		}
	}

	return true
}

// TourCost validates dist and tour, then returns the total cost of tour.
// The tour must be closed (first == last) and visit every index exactly once;
// its start vertex is taken from tour[0].
//
// Errors: matrix sentinels from loadCostTable, ErrInvalidTour.
//
// Complexity: O(n²) for matrix validation plus O(n) for the sum.
func TourCost(dist matrix.Matrix, tour []int) (int64, error) {
	ct, err := loadCostTable(dist)
	if err != nil {
		return 0, err
	}
	if len(tour) == 0 {
		return 0, ErrInvalidTour
	}
	if err = ValidateTour(tour, ct.n, tour[0]); err != nil {
		return 0, err
	}

	return ct.tourCost(tour), nil
}
