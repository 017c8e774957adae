// Package tsp - unified dispatcher for the route optimizer.
//
// This file provides the canonical entry points:
//
//   - Optimize: accept a matrix.Matrix + depot, validate, pick the search path
//     by Options, and return a validated Result.
//   - OptimizeRows: the same for raw [][]int64 rows.
//
// Selection policy (N = matrix order):
//   - N == 0            ⇒ ErrEmptyInstance.
//   - N == 1            ⇒ [depot, depot], cost 0.
//   - StrategyExact, or StrategyAuto with N ≤ ExactThreshold ⇒ exhaustive search.
//   - otherwise         ⇒ construction (Options.Construction) + 2-opt.
//
// Design principles:
//   - Deterministic: no randomness anywhere; identical input ⇒ identical output.
//   - Strict sentinels: every failure is one of the errors in types.go.
//   - No global state: each call owns its working memory; the cost table is
//     shared read-only between the call's own goroutines.
//   - Every returned tour is re-validated against the tour invariants.
package tsp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/tourplan/matrix"
)

// Optimize computes a minimum-cost (exact path) or best-found (heuristic path)
// closed tour over dist starting and ending at depot.
//
// Contracts:
//   - dist is square, zero-diagonal, non-negative (ErrInvalidInput family otherwise);
//     asymmetric costs are allowed.
//   - depot ∈ [0, N) (ErrDepotOutOfRange).
//   - N == 0 ⇒ ErrEmptyInstance.
//
// Cancellation: ctx and Options.TimeBudget are checked at permutation and
// pass boundaries. If a valid tour was already recorded it is returned with
// Partial=true; otherwise the error is ErrCancelled.
//
// Complexity: O(n²) validation plus the chosen path (see exact.go, insertion.go, two_opt.go).
func Optimize(ctx context.Context, dist matrix.Matrix, depot int, opts Options) (Result, error) {
	started := time.Now()

	ct, norm, err := loadInstance(dist, depot, opts)
	if err != nil {
		return Result{}, err
	}
	if norm.Strategy == StrategyExact && ct.n > MaxExactNodes {
		return Result{}, errExactTooLarge(ct.n)
	}

	ctx, cancel := withBudget(ctx, norm.TimeBudget)
	defer cancel()

	var res Result
	switch {
	case ct.n == 1:
		res = trivialResult(depot)
	case norm.Strategy == StrategyExact,
		norm.Strategy == StrategyAuto && ct.n <= norm.ExactThreshold:
		res, err = solveExact(ctx, ct, depot, norm.Workers)
	default:
		res, err = solveHeuristic(ctx, ct, depot, norm)
	}
	if err != nil {
		return Result{}, err
	}

	if err = ValidateTour(res.Tour, ct.n, depot); err != nil {
		return Result{}, fmt.Errorf("tsp: internal: %s produced %s: %w", res.Strategy, DebugString(res.Tour), err)
	}
	if res.Optimal {
		res.LowerBound = res.Cost
	} else {
		res.LowerBound = oneTreeBound(ct, depot)
	}
	res.Elapsed = time.Since(started)

	return res, nil
}

// OptimizeRows is Optimize over raw rows. Ragged rows are reported as
// ErrNonSquare, an empty slice as ErrEmptyInstance.
func OptimizeRows(ctx context.Context, rows [][]int64, depot int, opts Options) (Result, error) {
	m, err := matrix.NewFromRows(rows)
	if err != nil {
		return Result{}, rowsError(err)
	}

	return Optimize(ctx, m, depot, opts)
}

// rowsError maps matrix ingestion failures onto tsp sentinels.
func rowsError(err error) error {
	switch {
	case errors.Is(err, matrix.ErrEmpty):
		return ErrEmptyInstance
	case errors.Is(err, matrix.ErrNonInteger):
		return fmt.Errorf("%w: %v", ErrNonInteger, err)
	default:
		return fmt.Errorf("%w: %v", ErrNonSquare, err)
	}
}

// solveHeuristic runs the configured construction followed by 2-opt.
func solveHeuristic(ctx context.Context, ct *costTable, depot int, opts Options) (Result, error) {
	var (
		tour []int
		err  error
	)
	switch opts.Construction {
	case ConstructPathCheapestArc:
		tour, err = pathCheapestArc(ctx, ct, depot)
	default:
		tour, err = cheapestInsertion(ctx, ct, depot)
	}
	if err != nil {
		return Result{}, err
	}

	initial := ct.tourCost(tour)
	st := improve(ctx, ct, tour, opts)

	return Result{
		Tour:         tour,
		Cost:         st.cost,
		Strategy:     StrategyHeuristic,
		Construction: opts.Construction,
		InitialCost:  initial,
		Partial:      st.partial,
		Stop:         st.stop,
		Passes:       st.passes,
		Moves:        st.moves,
		Evaluated:    st.evaluated,
	}, nil
}

// errExactTooLarge reports an exhaustive search requested above MaxExactNodes.
func errExactTooLarge(n int) error {
	return fmt.Errorf("%w: exact search on %d nodes exceeds %d", ErrInvalidOptions, n, MaxExactNodes)
}
