package tsp

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// ErrInvalidInput is the umbrella for every malformed-input failure: a bad
// cost matrix, an out-of-range depot or inconsistent Options. All specific
// input sentinels below wrap it, so errors.Is(err, ErrInvalidInput) matches
// any of them.
var ErrInvalidInput = errors.New("tsp: invalid input")

var (
	// ErrNonSquare is returned when the cost matrix is not N×N.
	ErrNonSquare = fmt.Errorf("%w: cost matrix is not square", ErrInvalidInput)

	// ErrNegativeCost is returned when any entry is below zero.
	ErrNegativeCost = fmt.Errorf("%w: negative cost", ErrInvalidInput)

	// ErrNonZeroDiagonal is returned when a self-cost cost(i,i) is not zero.
	ErrNonZeroDiagonal = fmt.Errorf("%w: non-zero self cost", ErrInvalidInput)

	// ErrNonInteger is returned when raw input carries a fractional or non-finite cost.
	ErrNonInteger = fmt.Errorf("%w: non-integer cost", ErrInvalidInput)

	// ErrCostOverflow is returned when an entry is large enough that a tour sum could overflow int64.
	ErrCostOverflow = fmt.Errorf("%w: cost too large", ErrInvalidInput)

	// ErrDepotOutOfRange is returned when depot ∉ [0, N).
	ErrDepotOutOfRange = fmt.Errorf("%w: depot out of range", ErrInvalidInput)

	// ErrInvalidOptions is returned for negative knobs, unknown enum values, or an
	// exact search requested beyond MaxExactNodes.
	ErrInvalidOptions = fmt.Errorf("%w: invalid options", ErrInvalidInput)

	// ErrInvalidTour is returned when a caller-supplied tour breaks the tour invariants.
	ErrInvalidTour = fmt.Errorf("%w: invalid tour", ErrInvalidInput)
)

// ErrEmptyInstance is returned for a 0×0 (or nil) cost matrix.
var ErrEmptyInstance = errors.New("tsp: empty instance")

// ErrCancelled is returned when the search was interrupted (context cancelled or
// time budget spent) before any complete tour had been recorded. It wraps the
// context error, so errors.Is(err, context.DeadlineExceeded) also works.
var ErrCancelled = errors.New("tsp: search cancelled before a tour was found")

const (
	// DefaultExactThreshold is the largest N solved by exhaustive enumeration
	// under StrategyAuto. 9 nodes ⇒ 8! = 40 320 tours.
	DefaultExactThreshold = 9

	// MaxExactNodes bounds ExactThreshold and StrategyExact: 12 nodes ⇒ 11! ≈ 4·10⁷ tours.
	MaxExactNodes = 12

	// defaultMaxPasses is the finite pass cap used when Options.MaxPasses == 0.
	defaultMaxPasses = 100_000

	// defaultMaxSwapAttempts is the candidate-evaluation cap used when
	// Options.MaxSwapAttempts == 0.
	defaultMaxSwapAttempts int64 = 1 << 34
)

// Strategy selects the search path.
type Strategy int

const (
	// StrategyAuto picks exact enumeration for N ≤ ExactThreshold, heuristic otherwise.
	StrategyAuto Strategy = iota
	// StrategyExact forces exhaustive enumeration (N ≤ MaxExactNodes).
	StrategyExact
	// StrategyHeuristic forces construction + 2-opt.
	StrategyHeuristic
	// StrategyTrivial is reported for N == 1; it cannot be requested.
	StrategyTrivial
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyExact:
		return "exact"
	case StrategyHeuristic:
		return "heuristic"
	case StrategyTrivial:
		return "trivial"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps "auto", "exact" or "heuristic" ("" means auto) to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "exact":
		return StrategyExact, nil
	case "heuristic":
		return StrategyHeuristic, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOptions, s)
	}
}

// Construction selects the first-solution rule of the heuristic path.
type Construction int

const (
	// ConstructCheapestInsertion grows the tour by the globally cheapest insertion.
	ConstructCheapestInsertion Construction = iota
	// ConstructPathCheapestArc extends a path from the depot by its cheapest outgoing arc.
	ConstructPathCheapestArc
)

// String returns the snake-case construction name.
func (c Construction) String() string {
	switch c {
	case ConstructCheapestInsertion:
		return "cheapest_insertion"
	case ConstructPathCheapestArc:
		return "path_cheapest_arc"
	default:
		return fmt.Sprintf("construction(%d)", int(c))
	}
}

// ParseConstruction maps "cheapest_insertion" or "path_cheapest_arc" ("" means
// cheapest_insertion) to a Construction.
func ParseConstruction(s string) (Construction, error) {
	switch s {
	case "", "cheapest_insertion":
		return ConstructCheapestInsertion, nil
	case "path_cheapest_arc":
		return ConstructPathCheapestArc, nil
	default:
		return 0, fmt.Errorf("%w: unknown construction %q", ErrInvalidOptions, s)
	}
}

// StopReason tells why a search ended.
type StopReason int

const (
	// StopCompleted: the whole search space was covered (exact) or the instance is trivial.
	StopCompleted StopReason = iota
	// StopLocalOptimum: a full 2-opt pass found no improving move.
	StopLocalOptimum
	// StopPassLimit: Options.MaxPasses was reached.
	StopPassLimit
	// StopSwapLimit: Options.MaxSwapAttempts was reached.
	StopSwapLimit
	// StopDeadline: the time budget or context deadline expired.
	StopDeadline
	// StopCancelled: the caller cancelled the context.
	StopCancelled
)

// String returns the lower-case reason name.
func (r StopReason) String() string {
	switch r {
	case StopCompleted:
		return "completed"
	case StopLocalOptimum:
		return "local_optimum"
	case StopPassLimit:
		return "pass_limit"
	case StopSwapLimit:
		return "swap_limit"
	case StopDeadline:
		return "deadline"
	case StopCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("stop(%d)", int(r))
	}
}

// Options configures Optimize and the exported building blocks.
// Use DefaultOptions as a starting point; the zero value is also valid and
// resolves to the same defaults.
type Options struct {
	// ExactThreshold is the largest N solved exactly under StrategyAuto.
	// 0 ⇒ DefaultExactThreshold; must not exceed MaxExactNodes.
	ExactThreshold int

	// Strategy forces a path; StrategyAuto applies the threshold policy.
	Strategy Strategy

	// Construction is the first-solution rule of the heuristic path.
	Construction Construction

	// TimeBudget bounds the wall-clock time of one call. 0 ⇒ unbounded.
	TimeBudget time.Duration

	// MaxPasses bounds 2-opt passes. 0 ⇒ a large finite default.
	MaxPasses int

	// MaxSwapAttempts bounds the total number of 2-opt candidates evaluated.
	// 0 ⇒ a large finite default.
	MaxSwapAttempts int64

	// Workers bounds goroutines used by the exact enumeration and the
	// best-improvement 2-opt sweep. 0 ⇒ runtime.GOMAXPROCS(0); 1 ⇒ sequential.
	Workers int

	// FirstImprovement applies each improving 2-opt move as soon as the scan
	// meets it instead of the single best move per pass. Always sequential.
	FirstImprovement bool

	// OnPass, when set, is called after every 2-opt pass with the pass number
	// (1-based) and the tour cost after that pass. It runs on the calling
	// goroutine and must not retain the tour.
	OnPass func(pass int, cost int64)
}

// DefaultOptions returns the documented defaults: exact up to 9 nodes,
// cheapest insertion + best-improvement 2-opt above, no time budget.
func DefaultOptions() Options {
	return Options{
		ExactThreshold: DefaultExactThreshold,
		Strategy:       StrategyAuto,
		Construction:   ConstructCheapestInsertion,
	}
}

// normalized validates opts and resolves zero values to defaults.
//
// Complexity: O(1).
func (o Options) normalized() (Options, error) {
	if o.ExactThreshold < 0 || o.TimeBudget < 0 || o.MaxPasses < 0 || o.MaxSwapAttempts < 0 || o.Workers < 0 {
		return Options{}, fmt.Errorf("%w: negative value", ErrInvalidOptions)
	}
	if o.ExactThreshold > MaxExactNodes {
		return Options{}, fmt.Errorf("%w: exact threshold %d exceeds %d", ErrInvalidOptions, o.ExactThreshold, MaxExactNodes)
	}
	switch o.Strategy {
	case StrategyAuto, StrategyExact, StrategyHeuristic:
	default:
		return Options{}, fmt.Errorf("%w: strategy %s", ErrInvalidOptions, o.Strategy)
	}
	switch o.Construction {
	case ConstructCheapestInsertion, ConstructPathCheapestArc:
	default:
		return Options{}, fmt.Errorf("%w: construction %s", ErrInvalidOptions, o.Construction)
	}

	if o.ExactThreshold == 0 {
		o.ExactThreshold = DefaultExactThreshold
	}
	if o.MaxPasses == 0 {
		o.MaxPasses = defaultMaxPasses
	}
	if o.MaxSwapAttempts == 0 {
		o.MaxSwapAttempts = defaultMaxSwapAttempts
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}

	return o, nil
}

// Result is the outcome of a successful search. Failures are reported through
// the error return only; a Result is never a placeholder.
type Result struct {
	// Tour is the closed tour: len == N+1, Tour[0] == Tour[N] == depot.
	Tour []int

	// Cost is the total cost of Tour.
	Cost int64

	// Strategy is the path that produced Tour (never StrategyAuto).
	Strategy Strategy

	// Construction is the first-solution rule used (heuristic path only).
	Construction Construction

	// InitialCost is the construction cost before local search (heuristic path only).
	InitialCost int64

	// Optimal is true when Tour is proven optimal (complete exact search or N ≤ 1).
	Optimal bool

	// Partial is true when the search stopped on a budget or cancellation
	// before completing; Tour is still a valid tour, the best one recorded.
	Partial bool

	// Stop tells why the search ended.
	Stop StopReason

	// Passes is the number of 2-opt passes performed.
	Passes int

	// Moves is the number of improving 2-opt moves applied.
	Moves int

	// Evaluated counts enumerated permutations (exact) or evaluated 2-opt candidates.
	Evaluated int64

	// LowerBound is Cost when Optimal, otherwise the 1-tree bound (Optimize only).
	LowerBound int64

	// Elapsed is the wall-clock duration of the call.
	Elapsed time.Duration
}
