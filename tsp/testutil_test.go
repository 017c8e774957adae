// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package: deterministic instance generators, an independent
// brute-force reference, and tour assertions.
package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// seedDet is the base seed for generated instances.
	seedDet = int64(7)

	// maxCost bounds random off-diagonal costs.
	maxCost = 1000

	// scale turns unit geometry into integer costs.
	scale = 1000.0
)

// -----------------------------------------------------------------------------
// Instance generators
// -----------------------------------------------------------------------------

// mustDense builds a *matrix.Dense from rows or fails the test.
func mustDense(t testing.TB, rows [][]int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// randomRows returns an n×n zero-diagonal matrix with costs in [1, maxCost].
// symmetric mirrors the upper triangle.
func randomRows(n int, seed int64, symmetric bool) [][]int64 {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]int64, n)
	var i, j int
	for i = range rows {
		rows[i] = make([]int64, n)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if symmetric && j < i {
				rows[i][j] = rows[j][i]
				continue
			}
			rows[i][j] = 1 + rng.Int63n(maxCost)
		}
	}

	return rows
}

// euclidRows returns rounded Euclidean distances (times scale) between points.
func euclidRows(pts [][2]float64) [][]int64 {
	n := len(pts)
	rows := make([][]int64, n)
	var i, j int
	for i = 0; i < n; i++ {
		rows[i] = make([]int64, n)
		for j = 0; j < n; j++ {
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			rows[i][j] = int64(math.Round(math.Hypot(dx, dy) * scale))
		}
	}

	return rows
}

// circlePoints places n points evenly on the unit circle, counter-clockwise.
func circlePoints(n int) [][2]float64 {
	pts := make([][2]float64, n)
	var i int
	for i = 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{math.Cos(th), math.Sin(th)}
	}

	return pts
}

// interleavedTour returns the closed tour 0, n/2, 1, n/2+1, … ,0, a heavily
// self-crossing order on circle instances.
func interleavedTour(n int) []int {
	tour := make([]int, 0, n+1)
	half := (n + 1) / 2
	var i int
	for i = 0; i < half; i++ {
		tour = append(tour, i)
		if i+half < n {
			tour = append(tour, i+half)
		}
	}

	return append(tour, 0)
}

// shuffledTour returns a closed tour around depot with a seeded random interior.
func shuffledTour(n, depot int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	interior := make([]int, 0, n-1)
	var v int
	for v = 0; v < n; v++ {
		if v != depot {
			interior = append(interior, v)
		}
	}
	rng.Shuffle(len(interior), func(i, j int) { interior[i], interior[j] = interior[j], interior[i] })

	tour := append([]int{depot}, interior...)

	return append(tour, depot)
}

// -----------------------------------------------------------------------------
// Independent references
// -----------------------------------------------------------------------------

// bruteForce returns the optimal closed-tour cost by depth-first search over
// all orderings (no shared code with the package under test).
func bruteForce(rows [][]int64, depot int) int64 {
	n := len(rows)
	if n == 1 {
		return 0
	}
	used := make([]bool, n)
	used[depot] = true
	best := int64(math.MaxInt64)

	var dfs func(cur, placed int, acc int64)
	dfs = func(cur, placed int, acc int64) {
		if placed == n {
			if total := acc + rows[cur][depot]; total < best {
				best = total
			}
			return
		}
		var v int
		for v = 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			dfs(v, placed+1, acc+rows[cur][v])
			used[v] = false
		}
	}
	dfs(depot, 1, 0)

	return best
}

// sumTour adds up rows[tour[k]][tour[k+1]].
func sumTour(rows [][]int64, tour []int) int64 {
	var (
		sum int64
		k   int
	)
	for k = 0; k+1 < len(tour); k++ {
		sum += rows[tour[k]][tour[k+1]]
	}

	return sum
}

// requireValidTour checks the closed-tour invariants and the reported cost.
func requireValidTour(t testing.TB, rows [][]int64, depot int, res tsp.Result) {
	t.Helper()
	require.NoError(t, tsp.ValidateTour(res.Tour, len(rows), depot), "tour %s", tsp.DebugString(res.Tour))
	require.Equal(t, sumTour(rows, res.Tour), res.Cost, "reported cost differs from tour sum")
}
