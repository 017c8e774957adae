// Package tsp computes minimum-cost closed tours over a depot and a set of
// waypoints, given an N×N matrix of non-negative integer travel costs.
//
// The entry point is Optimize (or OptimizeRows). It chooses one of two paths:
//
//   - Exact: exhaustive lexicographic enumeration of the (N−1)! tours, run
//     lazily and in parallel blocks. Used for N ≤ Options.ExactThreshold
//     (default 9). Returns a proven optimum; ties resolve to the
//     lexicographically smallest tour.
//
//   - Heuristic: cheapest-insertion construction (or path-cheapest-arc)
//     followed by 2-opt local search that handles asymmetric costs exactly.
//     Bounded by MaxPasses, MaxSwapAttempts and TimeBudget.
//
// Non-optimal results carry a 1-tree LowerBound, so the optimality gap of a
// heuristic tour is bounded by Cost-LowerBound.
//
// Costs may be asymmetric (cost(i,j) ≠ cost(j,i)). Every call is
// deterministic, owns its working memory, and honors context cancellation:
// an interrupted search returns the best valid tour found with
// Result.Partial set, or ErrCancelled if there was none.
//
// All input errors match ErrInvalidInput via errors.Is; an empty matrix is
// ErrEmptyInstance.
package tsp
