// Package report renders an optimized tour for people: a numbered text step
// list, an xlsx workbook and a Google Maps directions link.
package report

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/pkg/errors"
)

// Route bundles a search result with what is needed to describe it.
type Route struct {
	Result tsp.Result
	// Locations are indexed like the cost matrix. Nil means "#i" names.
	Locations []provider.Location
	// Costs is the matrix the result was computed on.
	Costs matrix.Matrix
	// Unit labels every cost ("m", "s", ...).
	Unit string
	// Mode is the travel mode used for the maps link.
	Mode provider.Mode
}

// Step is one stop of the tour.
type Step struct {
	Position   int     `json:"position"` // 0-based position in the tour
	Index      int     `json:"index"`    // location index
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Leg        int64   `json:"leg"` // cost of the arc arriving here (0 for the start)
	Cumulative int64   `json:"cumulative"`
}

// Steps walks the tour and prices every leg.
func (r Route) Steps() ([]Step, error) {
	tour := r.Result.Tour
	if len(tour) < 2 {
		return nil, errors.New("report: empty tour")
	}
	n := len(tour) - 1
	if r.Locations != nil && len(r.Locations) != n {
		return nil, errors.Errorf("report: %d locations for a tour over %d", len(r.Locations), n)
	}
	if r.Costs == nil {
		return nil, errors.New("report: no cost matrix")
	}

	steps := make([]Step, len(tour))
	var total int64
	for p, v := range tour {
		s := Step{Position: p, Index: v, Name: "#" + strconv.Itoa(v)}
		if r.Locations != nil {
			l := r.Locations[v]
			s.Name, s.Lat, s.Lng = l.Name, l.Lat, l.Lng
		}
		if p > 0 {
			leg, err := r.Costs.At(tour[p-1], v)
			if err != nil {
				return nil, errors.Wrapf(err, "report: leg %d", p)
			}
			s.Leg = leg
			total += leg
		}
		s.Cumulative = total
		steps[p] = s
	}

	return steps, nil
}

// status summarizes how the result was obtained, e.g. "exact, optimal".
func (r Route) status() string {
	res := r.Result
	switch {
	case res.Partial:
		return fmt.Sprintf("%s, partial (%s)", res.Strategy, res.Stop)
	case res.Optimal:
		return fmt.Sprintf("%s, optimal", res.Strategy)
	default:
		return fmt.Sprintf("%s, %s", res.Strategy, res.Stop)
	}
}
