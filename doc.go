// Package tourplan plans closed delivery routes: given N locations and a
// depot it fetches a cost matrix and returns the cheapest tour it can find
// that starts and ends at the depot.
//
// Layout:
//
//	matrix/   integer cost tables (Dense) and row ingestion
//	tsp/      the optimizer: exact search up to a threshold, cheapest
//	          insertion + 2-opt above it, 1-tree lower bound
//	provider/ cost matrices from Google Maps or great-circle distance,
//	          read-through caching, OSM PBF location import
//	cache/    matrix stores: badger, JSON files, memory
//	report/   text, xlsx and Google Maps link renderings of a tour
//	config/   YAML + .env configuration and provider wiring
//	server/   HTTP surface (fiber)
//	cmd/      tourplan (CLI) and tourd (HTTP daemon)
//
// Quick start:
//
//	res, err := tsp.OptimizeRows(ctx, [][]int64{
//		{0, 5, 9},
//		{5, 0, 4},
//		{9, 4, 0},
//	}, 0, tsp.DefaultOptions())
//	// res.Tour == [0 1 2 0], res.Cost == 18, res.Optimal == true
package tourplan
