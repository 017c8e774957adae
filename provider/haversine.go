package provider

import (
	"context"
	"math"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

// AverageSpeeds holds the km/h used to turn great-circle meters into seconds.
var AverageSpeeds = map[Mode]float64{
	ModeDriving:   60.0,
	ModeWalking:   5.0,
	ModeBicycling: 15.0,
	ModeTransit:   30.0,
}

// Haversine is an offline Provider: great-circle distance between the
// coordinates, or that distance at the mode's average speed. Addresses are
// not geocoded; locations must carry coordinates.
type Haversine struct {
	metric Metric
}

// NewHaversine returns a Haversine provider producing metric.
func NewHaversine(metric Metric) *Haversine {
	return &Haversine{metric: metric}
}

// Metric implements Provider.
func (h *Haversine) Metric() Metric { return h.metric }

// CostMatrix implements Provider. The result is symmetric with a zero diagonal.
func (h *Haversine) CostMatrix(ctx context.Context, locs []Location, mode Mode) (*matrix.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkLocations(locs); err != nil {
		return nil, err
	}
	for i, l := range locs {
		if !l.hasCoordinates() {
			return nil, errors.Wrapf(ErrInvalidLocation, "haversine: location %d (%s) has no coordinates", i, l.Name)
		}
	}
	speed, ok := AverageSpeeds[mode]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMode, "travel mode %q", mode)
	}
	mps := speed * 1000 / 3600

	n := len(locs)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		a := orb.Point{locs[i].Lng, locs[i].Lat}
		for j = i + 1; j < n; j++ {
			meters := geo.DistanceHaversine(a, orb.Point{locs[j].Lng, locs[j].Lat})
			v := meters
			if h.metric == MetricDuration {
				v = meters / mps
			}
			cost := int64(math.Round(v))
			_ = m.Set(i, j, cost)
			_ = m.Set(j, i, cost)
		}
	}

	return m, nil
}
