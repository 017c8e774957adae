// Package tsp - 1-tree lower bound.
//
// The bound relaxes every arc to w(u,v) = min(cost(u,v), cost(v,u)), so it is
// valid for asymmetric matrices too: a tour leaves and re-enters the depot
// through two distinct neighbours and visits the rest along a Hamiltonian
// path, which costs at least a minimum spanning tree of the non-depot nodes.
//
// Complexity: O(n²) time, O(n) space (dense Prim).
package tsp

import (
	"math"

	"github.com/katalvlaran/tourplan/matrix"
)

// LowerBound validates dist and returns a 1-tree lower bound on the cost of
// any tour through depot. Heuristic results can be judged against it:
// (Cost - bound) / bound is an upper bound on the optimality gap.
func LowerBound(dist matrix.Matrix, depot int) (int64, error) {
	ct, err := loadCostTable(dist)
	if err != nil {
		return 0, err
	}
	if err = validateDepot(ct.n, depot); err != nil {
		return 0, err
	}

	return oneTreeBound(ct, depot), nil
}

// relaxed returns min(cost(u,v), cost(v,u)).
func (ct *costTable) relaxed(u, v int) int64 {
	return min(ct.at(u, v), ct.at(v, u))
}

// oneTreeBound is the MST of all nodes but depot plus the two cheapest
// relaxed arcs at depot.
func oneTreeBound(ct *costTable, depot int) int64 {
	switch n := ct.n; {
	case n <= 1:
		return 0
	case n == 2:
		other := 1 - depot
		return ct.at(depot, other) + ct.at(other, depot)
	}

	var (
		n      = ct.n
		inTree = make([]bool, n)
		best   = make([]int64, n)
		total  int64
		it, v  int
	)
	for v = range best {
		best[v] = math.MaxInt64
	}
	inTree[depot] = true
	root := 0
	if depot == 0 {
		root = 1
	}
	best[root] = 0

	// Prim over the n-1 non-depot nodes.
	for it = 0; it < n-1; it++ {
		u := -1
		for v = 0; v < n; v++ {
			if !inTree[v] && (u < 0 || best[v] < best[u]) {
				u = v
			}
		}
		inTree[u] = true
		total += best[u]
		for v = 0; v < n; v++ {
			if !inTree[v] {
				best[v] = min(best[v], ct.relaxed(u, v))
			}
		}
	}

	first, second := int64(math.MaxInt64), int64(math.MaxInt64)
	for v = 0; v < n; v++ {
		if v == depot {
			continue
		}
		w := ct.relaxed(depot, v)
		switch {
		case w < first:
			first, second = w, first
		case w < second:
			second = w
		}
	}

	return total + first + second
}
