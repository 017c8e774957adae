package provider_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/katalvlaran/tourplan/cache"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/provider"
	"googlemaps.github.io/maps"
)

// gridLocations returns n locations at integer coordinates (i mod 80, i).
func gridLocations(n int) []provider.Location {
	locs := make([]provider.Location, n)
	for i := range locs {
		locs[i] = provider.Location{Name: "L" + strconv.Itoa(i), Lat: float64(i % 80), Lng: float64(i)}
	}

	return locs
}

// parseLatLng reads back the "lat,lng" query of a location.
func parseLatLng(q string) (float64, float64) {
	parts := strings.Split(q, ",")
	lat, _ := strconv.ParseFloat(parts[0], 64)
	lng, _ := strconv.ParseFloat(parts[1], 64)

	return lat, lng
}

// fakeMaps answers DistanceMatrix with cost = 100*|Δlng| + |Δlat| meters and
// seconds equal to the meters.
type fakeMaps struct {
	mu       sync.Mutex
	calls    int
	maxBlock int
	err      error
	status   func(origin, dest string) string
}

func (f *fakeMaps) DistanceMatrix(_ context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error) {
	f.mu.Lock()
	f.calls++
	f.maxBlock = max(f.maxBlock, len(r.Origins), len(r.Destinations))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	resp := &maps.DistanceMatrixResponse{Rows: make([]maps.DistanceMatrixElementsRow, len(r.Origins))}
	for i, o := range r.Origins {
		olat, olng := parseLatLng(o)
		for _, d := range r.Destinations {
			dlat, dlng := parseLatLng(d)
			meters := int(100*abs(olng-dlng) + abs(olat-dlat))
			status := "OK"
			if f.status != nil {
				status = f.status(o, d)
			}
			resp.Rows[i].Elements = append(resp.Rows[i].Elements, &maps.DistanceMatrixElement{
				Status:   status,
				Distance: maps.Distance{Meters: meters},
				Duration: time.Duration(meters) * time.Second,
			})
		}
	}

	return resp, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}

// expectedCost mirrors fakeMaps for two grid locations.
func expectedCost(a, b provider.Location) int64 {
	return int64(100*abs(a.Lng-b.Lng) + abs(a.Lat-b.Lat))
}

// countingProvider records calls and returns a fixed matrix or error.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Metric() provider.Metric { return provider.MetricDistance }

func (p *countingProvider) CostMatrix(_ context.Context, locs []provider.Location, _ provider.Mode) (*matrix.Dense, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	n := len(locs)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				_ = m.Set(i, j, int64(10*i+j))
			}
		}
	}

	return m, nil
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, string) (cache.Entry, error) { return cache.Entry{}, errBroken }
func (brokenStore) Put(context.Context, string, cache.Entry) error   { return errBroken }
func (brokenStore) Close() error                                     { return nil }

