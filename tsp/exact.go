// Package tsp - exact solver by exhaustive enumeration.
//
// SolveExact evaluates every closed tour depot→π→depot, where π ranges over
// the permutations of the non-depot indices in ascending lexicographic order.
// The minimum is kept with a strict '<', so among equal-cost optima the
// lexicographically smallest interior sequence is returned.
//
// Parallelism:
//   - The permutation space is split into blocks by first interior index:
//     block b holds the (m-1)! permutations that start with the b-th smallest
//     non-depot index. Blocks are contiguous ranges of the global
//     lexicographic order.
//   - Each block runs on its own goroutine (bounded by Options.Workers) with a
//     private best; the join merges by (cost, block) so the answer is
//     identical to a sequential scan. No state is shared between workers.
//
// Complexity: O(n!·n) time in the worst case (partial sums prune the per-tour
// walk), O(n) space per worker.
package tsp

import (
	"context"

	"github.com/katalvlaran/tourplan/matrix"
	"golang.org/x/sync/errgroup"
)

// blockResult is the outcome of one enumeration block.
type blockResult struct {
	interior  []int // best interior sequence (copy), nil if none evaluated
	cost      int64
	evaluated int64
	complete  bool // the block was enumerated to its end
}

// SolveExact runs the exhaustive solver regardless of Options.Strategy and
// Options.ExactThreshold; N must not exceed MaxExactNodes.
//
// On cancellation or an expired TimeBudget it returns the best tour seen so
// far with Partial=true, or ErrCancelled if no tour was evaluated yet.
func SolveExact(ctx context.Context, dist matrix.Matrix, depot int, opts Options) (Result, error) {
	ct, norm, err := loadInstance(dist, depot, opts)
	if err != nil {
		return Result{}, err
	}
	if ct.n > MaxExactNodes {
		return Result{}, errExactTooLarge(ct.n)
	}
	ctx, cancel := withBudget(ctx, norm.TimeBudget)
	defer cancel()

	return solveExact(ctx, ct, depot, norm.Workers)
}

// solveExact enumerates all tours of ct around depot using up to workers goroutines.
func solveExact(ctx context.Context, ct *costTable, depot int, workers int) (Result, error) {
	if ct.n == 1 {
		return trivialResult(depot), nil
	}

	var (
		rest    = nonDepot(ct.n, depot)
		results = make([]blockResult, len(rest))
		g       errgroup.Group
	)
	g.SetLimit(workers)
	for b := 0; b < len(rest); b++ {
		g.Go(func() error {
			results[b] = scanBlock(ctx, ct, depot, rest, b)
			return nil
		})
	}
	_ = g.Wait() // workers never fail; cancellation is reported per block

	var (
		best     = -1
		complete = true
		res      = Result{Strategy: StrategyExact}
	)
	for b := range results {
		res.Evaluated += results[b].evaluated
		complete = complete && results[b].complete
		if results[b].interior == nil {
			continue
		}
		if best < 0 || results[b].cost < results[best].cost {
			best = b
		}
	}

	if best < 0 {
		return Result{}, cancelledError(ctx.Err())
	}
	res.Tour = closeTour(depot, results[best].interior)
	res.Cost = results[best].cost
	if complete {
		res.Optimal = true
		res.Stop = StopCompleted
	} else {
		res.Partial = true
		res.Stop = stopReasonOf(ctx.Err())
	}

	return res, nil
}

// scanBlock enumerates the permutations of rest that start with rest[b].
//
// Complexity: O((m-1)!·m) time, O(m) space.
func scanBlock(ctx context.Context, ct *costTable, depot int, rest []int, b int) blockResult {
	var (
		first = rest[b]
		tail  = make([]int, 0, len(rest)-1)
		head  = ct.at(depot, first)
		out   blockResult
		v     int
	)
	for _, v = range rest {
		if v != first {
			tail = append(tail, v)
		}
	}

	it := NewPermutations(tail)
	for it.Next() {
		if out.evaluated&cancelCheckMask == 0 && ctx.Err() != nil {
			return out
		}
		out.evaluated++

		var (
			perm = it.Perm()
			sum  = head
			prev = first
			ok   = true
		)
		for _, v = range perm {
			sum += ct.at(prev, v)
			prev = v
			// A partial sum that already reaches the incumbent cannot win under '<'.
			if out.interior != nil && sum >= out.cost {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		sum += ct.at(prev, depot)
		if out.interior == nil || sum < out.cost {
			if out.interior == nil {
				out.interior = make([]int, len(rest))
			}
			out.interior[0] = first
			copy(out.interior[1:], perm)
			out.cost = sum
		}
	}
	out.complete = true

	return out
}

// trivialResult is the N == 1 answer: [depot, depot] at cost 0.
func trivialResult(depot int) Result {
	return Result{
		Tour:     trivialTour(depot),
		Strategy: StrategyTrivial,
		Optimal:  true,
		Stop:     StopCompleted,
	}
}
