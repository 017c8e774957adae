// Package tsp - construction heuristics (first-solution strategies).
//
// CheapestInsertion: starting from the closed route [depot, depot], insert at
// every step the unplaced node u and arc (a→b) minimizing
//
//	Δ(u, a) = cost(a,u) + cost(u,b) − cost(a,b),   b = succ(a).
//
// Ties are broken by the lowest node index u, then by the lowest tail index a.
// Each unplaced node caches its best (Δ, a). An insertion of x into arc (a→b)
// replaces that arc by (a→x),(x→b): nodes whose cached arc was (a→b) rescan
// all arcs, the others only compare against the two new arcs. This keeps the
// construction at O(n²) on typical inputs (O(n³) worst case).
//
// PathCheapestArc: walk from the depot, always following the cheapest arc to
// an unvisited node (ties → lowest index), then return to the depot.
// Complexity O(n²).
//
// Both rules are deterministic given the matrix and depot, and both check the
// context between steps; an interrupted construction has no tour to offer and
// reports ErrCancelled.
package tsp

import (
	"context"

	"github.com/katalvlaran/tourplan/matrix"
)

// insertion is the best known insertion of one unplaced node.
type insertion struct {
	delta int64
	tail  int
}

// better reports whether (delta, tail) beats the cached insertion under the
// (Δ, tail index) order.
func (in insertion) better(delta int64, tail int) bool {
	return delta < in.delta || (delta == in.delta && tail < in.tail)
}

// CheapestInsertion builds a closed tour around depot by cheapest insertion
// and returns it with its cost. Options only contribute TimeBudget.
func CheapestInsertion(ctx context.Context, dist matrix.Matrix, depot int, opts Options) ([]int, int64, error) {
	ct, norm, err := loadInstance(dist, depot, opts)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := withBudget(ctx, norm.TimeBudget)
	defer cancel()

	tour, err := cheapestInsertion(ctx, ct, depot)
	if err != nil {
		return nil, 0, err
	}

	return tour, ct.tourCost(tour), nil
}

// PathCheapestArc builds a closed tour around depot by repeatedly following
// the cheapest arc to an unvisited node. Options only contribute TimeBudget.
func PathCheapestArc(ctx context.Context, dist matrix.Matrix, depot int, opts Options) ([]int, int64, error) {
	ct, norm, err := loadInstance(dist, depot, opts)
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := withBudget(ctx, norm.TimeBudget)
	defer cancel()

	tour, err := pathCheapestArc(ctx, ct, depot)
	if err != nil {
		return nil, 0, err
	}

	return tour, ct.tourCost(tour), nil
}

// cheapestInsertion implements CheapestInsertion on a validated table.
func cheapestInsertion(ctx context.Context, ct *costTable, depot int) ([]int, error) {
	var (
		n      = ct.n
		succ   = make([]int, n)
		placed = make([]bool, n)
		best   = make([]insertion, n)
		u, v   int
		step   int
	)
	succ[depot] = depot
	placed[depot] = true
	for u = 0; u < n; u++ {
		if !placed[u] {
			best[u] = insertion{delta: ct.at(depot, u) + ct.at(u, depot), tail: depot}
		}
	}

	for step = 1; step < n; step++ {
		if err := ctx.Err(); err != nil {
			return nil, cancelledError(err)
		}

		// Pick the cheapest unplaced node; ascending scan with '<' keeps the lowest index.
		x := -1
		for u = 0; u < n; u++ {
			if placed[u] {
				continue
			}
			if x < 0 || best[u].delta < best[x].delta {
				x = u
			}
		}

		a := best[x].tail
		b := succ[a]
		succ[a] = x
		succ[x] = b
		placed[x] = true

		// Refresh cached insertions of the remaining nodes.
		for u = 0; u < n; u++ {
			if placed[u] {
				continue
			}
			if best[u].tail == a {
				// Cached arc (a→b) no longer exists: rescan every arc, tails ascending.
				best[u] = insertion{delta: 0, tail: -1}
				for v = 0; v < n; v++ {
					if !placed[v] {
						continue
					}
					d := ct.at(v, u) + ct.at(u, succ[v]) - ct.at(v, succ[v])
					if best[u].tail < 0 || d < best[u].delta {
						best[u] = insertion{delta: d, tail: v}
					}
				}
				continue
			}
			if d := ct.at(a, u) + ct.at(u, x) - ct.at(a, x); best[u].better(d, a) {
				best[u] = insertion{delta: d, tail: a}
			}
			if d := ct.at(x, u) + ct.at(u, b) - ct.at(x, b); best[u].better(d, x) {
				best[u] = insertion{delta: d, tail: x}
			}
		}
	}

	return tourFromSuccessors(succ, depot), nil
}

// pathCheapestArc implements PathCheapestArc on a validated table.
func pathCheapestArc(ctx context.Context, ct *costTable, depot int) ([]int, error) {
	var (
		n       = ct.n
		visited = make([]bool, n)
		tour    = make([]int, 0, n+1)
		cur     = depot
		v       int
	)
	visited[depot] = true
	tour = append(tour, depot)

	for len(tour) < n {
		if err := ctx.Err(); err != nil {
			return nil, cancelledError(err)
		}
		next := -1
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			if next < 0 || ct.at(cur, v) < ct.at(cur, next) {
				next = v
			}
		}
		visited[next] = true
		tour = append(tour, next)
		cur = next
	}

	return append(tour, depot), nil
}

// tourFromSuccessors unrolls a successor array into a closed tour from depot.
//
// Complexity: O(n).
func tourFromSuccessors(succ []int, depot int) []int {
	var (
		n    = len(succ)
		tour = make([]int, n+1)
		cur  = depot
		i    int
	)
	for i = 0; i < n; i++ {
		tour[i] = cur
		cur = succ[cur]
	}
	tour[n] = depot

	return tour
}
