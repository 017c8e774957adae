// Benchmarks for the exact and heuristic paths. Inputs are built outside the
// timer from fixed seeds.
package tsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tourplan/tsp"
)

func BenchmarkOptimize_Exact9(b *testing.B) {
	m := mustDense(b, randomRows(9, seedDet, true))
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.Optimize(ctx, m, 0, tsp.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOptimize_Heuristic200(b *testing.B) {
	m := mustDense(b, euclidRows(circlePoints(200)))
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.Optimize(ctx, m, 0, tsp.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkTwoOpt(b *testing.B, n, workers int, sym bool) {
	m := mustDense(b, randomRows(n, seedDet, sym))
	start := shuffledTour(n, 0, seedDet)
	ctx := context.Background()
	opts := tsp.Options{Workers: workers}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.TwoOpt(ctx, m, start, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTwoOpt_Sym150_Seq(b *testing.B)  { benchmarkTwoOpt(b, 150, 1, true) }
func BenchmarkTwoOpt_Sym150_Par(b *testing.B)  { benchmarkTwoOpt(b, 150, 0, true) }
func BenchmarkTwoOpt_Asym150_Seq(b *testing.B) { benchmarkTwoOpt(b, 150, 1, false) }
