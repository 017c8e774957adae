package tsp_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/stretchr/testify/require"
)

func TestOptimize_InvalidInput(t *testing.T) {
	valid := [][]int64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}}
	nonSquare, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	tests := []struct {
		name  string
		run   func() error
		match error
	}{
		{"negative entry", func() error {
			_, err := tsp.OptimizeRows(context.Background(), [][]int64{{0, 1, 2}, {1, 0, -3}, {2, 3, 0}}, 0, tsp.Options{})
			return err
		}, tsp.ErrNegativeCost},
		{"non-square matrix", func() error {
			_, err := tsp.Optimize(context.Background(), nonSquare, 0, tsp.Options{})
			return err
		}, tsp.ErrNonSquare},
		{"ragged rows", func() error {
			_, err := tsp.OptimizeRows(context.Background(), [][]int64{{0, 1}, {1}}, 0, tsp.Options{})
			return err
		}, tsp.ErrNonSquare},
		{"depot equal to N", func() error {
			_, err := tsp.OptimizeRows(context.Background(), valid, 3, tsp.Options{})
			return err
		}, tsp.ErrDepotOutOfRange},
		{"negative depot", func() error {
			_, err := tsp.OptimizeRows(context.Background(), valid, -1, tsp.Options{})
			return err
		}, tsp.ErrDepotOutOfRange},
		{"non-zero diagonal", func() error {
			_, err := tsp.OptimizeRows(context.Background(), [][]int64{{1, 1}, {1, 0}}, 0, tsp.Options{})
			return err
		}, tsp.ErrNonZeroDiagonal},
		{"overflow-prone cost", func() error {
			_, err := tsp.OptimizeRows(context.Background(), [][]int64{{0, math.MaxInt64 / 2}, {1, 0}}, 0, tsp.Options{})
			return err
		}, tsp.ErrCostOverflow},
		{"threshold above max", func() error {
			_, err := tsp.OptimizeRows(context.Background(), valid, 0, tsp.Options{ExactThreshold: tsp.MaxExactNodes + 1})
			return err
		}, tsp.ErrInvalidOptions},
		{"negative budget", func() error {
			_, err := tsp.OptimizeRows(context.Background(), valid, 0, tsp.Options{TimeBudget: -1})
			return err
		}, tsp.ErrInvalidOptions},
		{"unknown strategy", func() error {
			_, err := tsp.OptimizeRows(context.Background(), valid, 0, tsp.Options{Strategy: tsp.StrategyTrivial})
			return err
		}, tsp.ErrInvalidOptions},
		{"forced exact too large", func() error {
			_, err := tsp.OptimizeRows(context.Background(), randomRows(13, seedDet, true), 0, tsp.Options{Strategy: tsp.StrategyExact})
			return err
		}, tsp.ErrInvalidOptions},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.ErrorIs(t, err, tc.match)
			require.ErrorIs(t, err, tsp.ErrInvalidInput)
		})
	}
}

func TestOptimize_EmptyInstance(t *testing.T) {
	_, err := tsp.OptimizeRows(context.Background(), nil, 0, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrEmptyInstance)
	require.False(t, errors.Is(err, tsp.ErrInvalidInput))

	_, err = tsp.OptimizeRows(context.Background(), [][]int64{}, 0, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrEmptyInstance)

	_, err = tsp.Optimize(context.Background(), nil, 0, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrEmptyInstance)
}

func TestOptimize_SingleNode(t *testing.T) {
	res, err := tsp.OptimizeRows(context.Background(), [][]int64{{0}}, 0, tsp.Options{})
	require.NoError(t, err)
	require.Equal(t, []int{0, 0}, res.Tour)
	require.Zero(t, res.Cost)
	require.Equal(t, tsp.StrategyTrivial, res.Strategy)
}

func TestOptimize_StrategySelection(t *testing.T) {
	tests := []struct {
		n    int
		opts tsp.Options
		want tsp.Strategy
	}{
		{9, tsp.DefaultOptions(), tsp.StrategyExact},
		{10, tsp.DefaultOptions(), tsp.StrategyHeuristic},
		{6, tsp.Options{ExactThreshold: 5}, tsp.StrategyHeuristic},
		{5, tsp.Options{ExactThreshold: 5}, tsp.StrategyExact},
		{10, tsp.Options{Strategy: tsp.StrategyExact}, tsp.StrategyExact},
		{4, tsp.Options{Strategy: tsp.StrategyHeuristic}, tsp.StrategyHeuristic},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d/%s", tc.n, tc.want), func(t *testing.T) {
			rows := randomRows(tc.n, seedDet+int64(tc.n), true)
			res, err := tsp.OptimizeRows(context.Background(), rows, 0, tc.opts)
			require.NoError(t, err)
			require.Equal(t, tc.want, res.Strategy)
			require.Equal(t, res.Strategy == tsp.StrategyExact, res.Optimal)
			requireValidTour(t, rows, 0, res)
		})
	}
}

func TestOptimize_HeuristicBetweenOptimumAndConstruction(t *testing.T) {
	for _, c := range []tsp.Construction{tsp.ConstructCheapestInsertion, tsp.ConstructPathCheapestArc} {
		for seed := int64(0); seed < 5; seed++ {
			rows := randomRows(9, seedDet+seed, seed%2 == 0)
			opt := bruteForce(rows, 0)

			res, err := tsp.OptimizeRows(context.Background(), rows, 0, tsp.Options{Strategy: tsp.StrategyHeuristic, Construction: c})
			require.NoError(t, err)
			require.Equal(t, c, res.Construction)
			require.LessOrEqual(t, res.Cost, res.InitialCost)
			require.GreaterOrEqual(t, res.Cost, opt)
			require.Equal(t, tsp.StopLocalOptimum, res.Stop)
		}
	}
}

func TestOptimize_ValidTourForAllSizes(t *testing.T) {
	var n int
	for n = 1; n <= 40; n++ {
		rows := randomRows(n, seedDet+int64(n), n%3 == 0)
		depot := n / 2
		res, err := tsp.OptimizeRows(context.Background(), rows, depot, tsp.Options{})
		require.NoError(t, err, "n=%d", n)
		requireValidTour(t, rows, depot, res)
		require.False(t, res.Partial)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	rows := randomRows(70, seedDet, false)
	first, err := tsp.OptimizeRows(context.Background(), rows, 3, tsp.Options{})
	require.NoError(t, err)
	for rep := 0; rep < 3; rep++ {
		res, err := tsp.OptimizeRows(context.Background(), rows, 3, tsp.Options{})
		require.NoError(t, err)
		require.Equal(t, first.Tour, res.Tour)
		require.Equal(t, first.Cost, res.Cost)
		require.Equal(t, first.Passes, res.Passes)
	}
}

func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, n := range []int{5, 20} {
		_, err := tsp.OptimizeRows(ctx, randomRows(n, seedDet, true), 0, tsp.Options{})
		require.ErrorIs(t, err, tsp.ErrCancelled, "n=%d", n)
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestOptimize_CancelMidHeuristicReturnsPartial(t *testing.T) {
	rows := randomRows(40, seedDet, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := tsp.OptimizeRows(ctx, rows, 0, tsp.Options{
		Construction: tsp.ConstructPathCheapestArc,
		Workers:      1,
		OnPass:       func(int, int64) { cancel() },
	})
	require.NoError(t, err)
	requireValidTour(t, rows, 0, res)
	require.Equal(t, 1, res.Passes)
	require.Equal(t, 1, res.Moves)
	require.True(t, res.Partial)
	require.False(t, res.Optimal)
	require.Equal(t, tsp.StopCancelled, res.Stop)
	require.Less(t, res.Cost, res.InitialCost)
	require.Less(t, res.LowerBound, res.Cost)
}

func TestDefaultOptions_Construction(t *testing.T) {
	require.Equal(t, tsp.ConstructCheapestInsertion, tsp.DefaultOptions().Construction)
	require.Equal(t, "cheapest_insertion", tsp.ConstructCheapestInsertion.String())
	require.Equal(t, "path_cheapest_arc", tsp.ConstructPathCheapestArc.String())
}

func TestParseStrategyAndConstruction(t *testing.T) {
	for _, s := range []tsp.Strategy{tsp.StrategyAuto, tsp.StrategyExact, tsp.StrategyHeuristic} {
		got, err := tsp.ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := tsp.ParseStrategy("greedy")
	require.ErrorIs(t, err, tsp.ErrInvalidOptions)

	for _, c := range []tsp.Construction{tsp.ConstructCheapestInsertion, tsp.ConstructPathCheapestArc} {
		got, err := tsp.ParseConstruction(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
	_, err = tsp.ParseConstruction("savings")
	require.ErrorIs(t, err, tsp.ErrInvalidOptions)
}

func TestEnums_TextRoundTrip(t *testing.T) {
	var s tsp.Strategy
	require.NoError(t, s.UnmarshalText([]byte("heuristic")))
	require.Equal(t, tsp.StrategyHeuristic, s)
	b, err := s.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "heuristic", string(b))
	require.ErrorIs(t, s.UnmarshalText([]byte("random")), tsp.ErrInvalidOptions)

	var c tsp.Construction
	require.NoError(t, c.UnmarshalText([]byte("path_cheapest_arc")))
	require.Equal(t, tsp.ConstructPathCheapestArc, c)

	b, err = tsp.StopDeadline.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "deadline", string(b))
}
