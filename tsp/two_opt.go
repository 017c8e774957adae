// Package tsp - 2-opt local search engine.
//
// A 2-opt move on the closed tour T (len n+1, T[0]==T[n]==depot) is a pair
// of cut positions 1 ≤ i < k ≤ n−1. It removes arcs (a→b) and (c→d), with
// a=T[i−1], b=T[i], c=T[k], d=T[k+1], and reverses T[i..k] in place.
//
// Because matrices may be asymmetric, reversing the segment also changes the
// cost of its interior arcs. Two prefix sums over the current tour,
//
//	fwd[j] = Σ_{m<j} w(T[m], T[m+1]),   bwd[j] = Σ_{m<j} w(T[m+1], T[m]),
//
// make every candidate O(1):
//
//	Δ(i,k) = w(a,c) + (bwd[k]−bwd[i]) + w(b,d) − w(a,b) − (fwd[k]−fwd[i]) − w(c,d).
//
// On symmetric matrices bwd aliases fwd and Δ reduces to the classic formula.
//
// Policies:
//   - Best improvement (default): one pass scans every candidate in order
//     (increasing i, then increasing k) and applies the single most negative
//     Δ; ties go to the earliest candidate. With Workers > 1 and n ≥ 64 the
//     scan is split across goroutines by interleaved i; the merge uses the
//     same (Δ, i, k) order, so the move is identical to the sequential scan.
//   - First improvement (Options.FirstImprovement): every improving candidate
//     is applied as the scan meets it; sequential.
//
// Termination: each applied move lowers the integer cost by at least 1, so
// the search converges; MaxPasses, MaxSwapAttempts, the time budget and the
// context bound it further. Stopping on a bound before a local optimum marks
// the result Partial. The tour is only ever rewritten by complete reversals,
// so it is valid at every pass boundary.
//
// Complexity: O(n²) candidates per pass, O(n) per applied move, O(n) memory.
package tsp

import (
	"context"

	"github.com/katalvlaran/tourplan/matrix"
	"golang.org/x/sync/errgroup"
)

// parallelSweepMinN is the smallest instance for which a parallel sweep pays off.
const parallelSweepMinN = 64

// move is a 2-opt candidate with its cost change; i == 0 means "none".
type move struct {
	delta int64
	i, k  int
}

// before orders moves by (Δ, i, k).
func (m move) before(o move) bool {
	if m.delta != o.delta {
		return m.delta < o.delta
	}
	if m.i != o.i {
		return m.i < o.i
	}

	return m.k < o.k
}

// searchStats collects the bookkeeping of one local search run.
type searchStats struct {
	cost      int64
	passes    int
	moves     int
	evaluated int64
	stop      StopReason
	partial   bool
}

// sweep owns the working tour and its prefix sums.
type sweep struct {
	ct  *costTable
	t   []int
	fwd []int64
	bwd []int64
	sym bool
}

// newSweep allocates prefix sums for t; bwd aliases fwd on symmetric tables.
func newSweep(ct *costTable, t []int) *sweep {
	s := &sweep{ct: ct, t: t, fwd: make([]int64, ct.n+1), sym: ct.isSymmetric()}
	if s.sym {
		s.bwd = s.fwd
	} else {
		s.bwd = make([]int64, ct.n+1)
	}
	s.refresh()

	return s
}

// refresh recomputes both prefix sums from the current tour.
//
// Complexity: O(n).
func (s *sweep) refresh() {
	var (
		n = s.ct.n
		j int
	)
	for j = 0; j < n; j++ {
		s.fwd[j+1] = s.fwd[j] + s.ct.at(s.t[j], s.t[j+1])
		if !s.sym {
			s.bwd[j+1] = s.bwd[j] + s.ct.at(s.t[j+1], s.t[j])
		}
	}
}

// delta returns the cost change of reversing t[i..k].
func (s *sweep) delta(i, k int) int64 {
	var (
		t = s.t
		a = t[i-1]
		b = t[i]
		c = t[k]
		d = t[k+1]
	)

	return s.ct.at(a, c) + (s.bwd[k] - s.bwd[i]) + s.ct.at(b, d) -
		s.ct.at(a, b) - (s.fwd[k] - s.fwd[i]) - s.ct.at(c, d)
}

// apply reverses t[i..k] and refreshes the prefix sums.
func (s *sweep) apply(i, k int) {
	reverseArcInPlace(s.t, i, k)
	s.refresh()
}

// scan evaluates candidates with i = start, start+stride, … (all k > i) and
// returns the best improving move (i == 0 when none). It stops early after
// limit evaluations (truncated) or when ctx is cancelled (err).
func (s *sweep) scan(ctx context.Context, start, stride int, limit int64) (best move, evaluated int64, truncated bool, err error) {
	var (
		n    = s.ct.n
		i, k int
		d    int64
	)
	for i = start; i <= n-2; i += stride {
		for k = i + 1; k <= n-1; k++ {
			if evaluated >= limit {
				return best, evaluated, true, nil
			}
			if evaluated&cancelCheckMask == 0 {
				if err = ctx.Err(); err != nil {
					return move{}, evaluated, false, err
				}
			}
			evaluated++
			if d = s.delta(i, k); d < 0 && (best.i == 0 || d < best.delta) {
				best = move{delta: d, i: i, k: k}
			}
		}
	}

	return best, evaluated, false, nil
}

// bestMove runs one best-improvement scan, in parallel when worthwhile.
func (s *sweep) bestMove(ctx context.Context, limit int64, workers int) (move, int64, bool, error) {
	var (
		n     = s.ct.n
		pairs = int64(n-2) * int64(n-1) / 2
	)
	if workers <= 1 || n < parallelSweepMinN || limit < pairs {
		return s.scan(ctx, 1, 1, limit)
	}
	if workers > n-2 {
		workers = n - 2
	}

	var (
		bests = make([]move, workers)
		evals = make([]int64, workers)
		g     errgroup.Group
	)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			m, e, _, err := s.scan(ctx, 1+w, workers, limit)
			bests[w], evals[w] = m, e
			return err
		})
	}
	err := g.Wait()

	var (
		best  move
		total int64
	)
	for w := range bests {
		total += evals[w]
		if bests[w].i != 0 && (best.i == 0 || bests[w].before(best)) {
			best = bests[w]
		}
	}
	if err != nil {
		return move{}, total, false, err
	}

	return best, total, false, nil
}

// firstImprovementPass applies every improving candidate met in scan order.
// Returns the summed Δ of the applied moves and their count.
func (s *sweep) firstImprovementPass(ctx context.Context, limit int64) (gain int64, moves int, evaluated int64, truncated bool, err error) {
	var (
		n    = s.ct.n
		i, k int
		d    int64
	)
	for i = 1; i <= n-2; i++ {
		for k = i + 1; k <= n-1; k++ {
			if evaluated >= limit {
				return gain, moves, evaluated, true, nil
			}
			if evaluated&cancelCheckMask == 0 {
				if err = ctx.Err(); err != nil {
					return gain, moves, evaluated, false, err
				}
			}
			evaluated++
			if d = s.delta(i, k); d < 0 {
				s.apply(i, k)
				gain += d
				moves++
			}
		}
	}

	return gain, moves, evaluated, false, nil
}

// TwoOpt improves a closed tour by 2-opt and returns the result; the input
// tour is not modified. The depot is taken from tour[0].
//
// Uses Options: MaxPasses, MaxSwapAttempts, TimeBudget, Workers,
// FirstImprovement, OnPass.
//
// Errors: ErrInvalidTour and the matrix sentinels; ErrCancelled never occurs
// because the input tour is always a valid fallback (the result is Partial).
func TwoOpt(ctx context.Context, dist matrix.Matrix, tour []int, opts Options) (Result, error) {
	if len(tour) == 0 {
		return Result{}, ErrInvalidTour
	}
	ct, norm, err := loadInstance(dist, tour[0], opts)
	if err != nil {
		return Result{}, err
	}
	if err = ValidateTour(tour, ct.n, tour[0]); err != nil {
		return Result{}, err
	}
	ctx, cancel := withBudget(ctx, norm.TimeBudget)
	defer cancel()

	cur := CopyTour(tour)
	initial := ct.tourCost(cur)
	st := improve(ctx, ct, cur, norm)

	return Result{
		Tour:        cur,
		Cost:        st.cost,
		Strategy:    StrategyHeuristic,
		InitialCost: initial,
		Partial:     st.partial,
		Stop:        st.stop,
		Passes:      st.passes,
		Moves:       st.moves,
		Evaluated:   st.evaluated,
	}, nil
}

// improve runs 2-opt on t in place under opts (already normalized).
func improve(ctx context.Context, ct *costTable, t []int, opts Options) searchStats {
	st := searchStats{cost: ct.tourCost(t)}
	if ct.n < 3 {
		st.stop = StopLocalOptimum
		return st
	}
	s := newSweep(ct, t)

	for {
		if st.passes >= opts.MaxPasses {
			st.stop, st.partial = StopPassLimit, true
			break
		}
		if err := ctx.Err(); err != nil {
			st.stop, st.partial = stopReasonOf(err), true
			break
		}
		remaining := opts.MaxSwapAttempts - st.evaluated
		if remaining <= 0 {
			st.stop, st.partial = StopSwapLimit, true
			break
		}

		var (
			improved  bool
			truncated bool
			evals     int64
			err       error
		)
		if opts.FirstImprovement {
			var (
				gain  int64
				moves int
			)
			gain, moves, evals, truncated, err = s.firstImprovementPass(ctx, remaining)
			st.cost += gain
			st.moves += moves
			improved = moves > 0
		} else {
			var m move
			m, evals, truncated, err = s.bestMove(ctx, remaining, opts.Workers)
			if err == nil && m.i != 0 {
				s.apply(m.i, m.k)
				st.cost += m.delta
				st.moves++
				improved = true
			}
		}
		st.evaluated += evals
		if err != nil {
			st.stop, st.partial = stopReasonOf(err), true
			break
		}

		st.passes++
		if opts.OnPass != nil {
			opts.OnPass(st.passes, st.cost)
		}
		if truncated {
			st.stop, st.partial = StopSwapLimit, true
			break
		}
		if !improved {
			st.stop = StopLocalOptimum
			break
		}
	}

	st.cost = ct.tourCost(t)

	return st
}
