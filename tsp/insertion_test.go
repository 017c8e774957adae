package tsp_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/tourplan/tsp"
	"github.com/stretchr/testify/require"
)

// lineRows: depot at x=0, node 1 at x=10, node 2 at x=5.
var lineRows = [][]int64{
	{0, 10, 5},
	{10, 0, 5},
	{5, 5, 0},
}

func TestCheapestInsertion_Line(t *testing.T) {
	tour, cost, err := tsp.CheapestInsertion(context.Background(), mustDense(t, lineRows), 0, tsp.Options{})
	require.NoError(t, err)
	// Node 2 goes first (Δ=10); node 1 then ties at Δ=10 on both arcs and takes tail 0.
	require.Equal(t, []int{0, 1, 2, 0}, tour)
	require.EqualValues(t, 20, cost)
}

func TestPathCheapestArc_Line(t *testing.T) {
	tour, cost, err := tsp.PathCheapestArc(context.Background(), mustDense(t, lineRows), 0, tsp.Options{})
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 1, 0}, tour)
	require.EqualValues(t, 20, cost)
}

func TestCheapestInsertion_TiesPreferLowestIndex(t *testing.T) {
	rows := [][]int64{
		{0, 7, 7, 7},
		{7, 0, 7, 7},
		{7, 7, 0, 7},
		{7, 7, 7, 0},
	}
	tour, cost, err := tsp.CheapestInsertion(context.Background(), mustDense(t, rows), 0, tsp.Options{})
	require.NoError(t, err)
	// 1, then 2, then 3 are inserted, each right after the depot.
	require.Equal(t, []int{0, 3, 2, 1, 0}, tour)
	require.EqualValues(t, 28, cost)
}

func TestConstruction_ValidAndDeterministic(t *testing.T) {
	type build func(context.Context, *testing.T, [][]int64, int) ([]int, int64, error)
	builders := map[string]build{
		"cheapest_insertion": func(ctx context.Context, t *testing.T, rows [][]int64, depot int) ([]int, int64, error) {
			return tsp.CheapestInsertion(ctx, mustDense(t, rows), depot, tsp.Options{})
		},
		"path_cheapest_arc": func(ctx context.Context, t *testing.T, rows [][]int64, depot int) ([]int, int64, error) {
			return tsp.PathCheapestArc(ctx, mustDense(t, rows), depot, tsp.Options{})
		},
	}

	for name, fn := range builders {
		for _, n := range []int{1, 2, 3, 7, 16, 41} {
			rows := randomRows(n, seedDet*int64(n), false)
			depot := (n - 1) / 2
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				tour, cost, err := fn(context.Background(), t, rows, depot)
				require.NoError(t, err)
				require.NoError(t, tsp.ValidateTour(tour, n, depot))
				require.Equal(t, sumTour(rows, tour), cost)

				again, _, err := fn(context.Background(), t, rows, depot)
				require.NoError(t, err)
				require.Equal(t, tour, again)
			})
		}
	}
}

func TestCheapestInsertion_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := tsp.CheapestInsertion(ctx, mustDense(t, randomRows(5, seedDet, true)), 0, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrCancelled)

	_, _, err = tsp.PathCheapestArc(ctx, mustDense(t, randomRows(5, seedDet, true)), 0, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrCancelled)
}

func TestCheapestInsertion_InvalidDepot(t *testing.T) {
	_, _, err := tsp.CheapestInsertion(context.Background(), mustDense(t, lineRows), 3, tsp.Options{})
	require.ErrorIs(t, err, tsp.ErrDepotOutOfRange)
	require.ErrorIs(t, err, tsp.ErrInvalidInput)
}
