// Package provider turns an ordered list of locations into the cost matrix
// consumed by the route optimizer.
//
// A Provider performs all of its I/O before optimization starts. Failures are
// explicit: an unreachable backend is ErrProviderUnavailable, an unroutable
// pair is ErrRouteNotFound, and a matrix is never padded with placeholder
// costs. Cached wraps any Provider with a cache.Store.
package provider

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/pkg/errors"
)

var (
	// ErrProviderUnavailable is returned when the backing data source cannot
	// be reached (and no cached value exists).
	ErrProviderUnavailable = errors.New("provider: matrix source unavailable")

	// ErrRouteNotFound is returned when the source has no route between two locations.
	ErrRouteNotFound = errors.New("provider: no route between locations")

	// ErrInvalidLocation is returned for an empty list or out-of-range coordinates.
	ErrInvalidLocation = errors.New("provider: invalid location")

	// ErrUnknownMode is returned by ParseMode and ParseMetric for unsupported values.
	ErrUnknownMode = errors.New("provider: unknown mode")
)

// Location is one stop of the route. Address, when set, is sent to services
// that geocode; Lat/Lng are used otherwise.
type Location struct {
	Name    string  `json:"name" yaml:"name" validate:"required"`
	Address string  `json:"address,omitempty" yaml:"address,omitempty"`
	Lat     float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng     float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// ID identifies the location in cache keys.
func (l Location) ID() string {
	if l.Address != "" {
		return l.Name + "@" + l.Address
	}

	return fmt.Sprintf("%s@%.6f,%.6f", l.Name, l.Lat, l.Lng)
}

// Query is the origin/destination string sent to a remote service.
func (l Location) Query() string {
	if l.Address != "" {
		return l.Address
	}

	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lng)
}

// Mode is the travel mode of a matrix request.
type Mode string

// Supported travel modes.
const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
	ModeTransit   Mode = "transit"
)

// ParseMode validates s ("" means driving).
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeDriving, nil
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "travel mode %q", s)
	}
}

// Metric is the unit of the matrix entries.
type Metric string

// Supported metrics.
const (
	MetricDistance Metric = "distance" // meters
	MetricDuration Metric = "duration" // seconds
)

// Unit returns the short unit label of m.
func (m Metric) Unit() string {
	if m == MetricDuration {
		return "s"
	}

	return "m"
}

// ParseMetric validates s ("" means distance).
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case "":
		return MetricDistance, nil
	case MetricDistance, MetricDuration:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "metric %q", s)
	}
}

// Provider builds cost matrices.
type Provider interface {
	// CostMatrix returns the len(locs)×len(locs) cost matrix for mode.
	CostMatrix(ctx context.Context, locs []Location, mode Mode) (*matrix.Dense, error)
	// Metric reports the unit of the returned entries.
	Metric() Metric
}

// hasCoordinates reports whether l carries a usable position. An address-only
// location is left at (0,0) and has none.
func (l Location) hasCoordinates() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.Abs(l.Lat) > 90 || math.Abs(l.Lng) > 180 {
		return false
	}

	return l.Address == "" || l.Lat != 0 || l.Lng != 0
}

// checkLocations rejects empty lists and coordinates outside the globe.
func checkLocations(locs []Location) error {
	if len(locs) == 0 {
		return errors.Wrap(ErrInvalidLocation, "no locations")
	}
	for i, l := range locs {
		if l.Address != "" {
			continue
		}
		if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) || math.Abs(l.Lat) > 90 || math.Abs(l.Lng) > 180 {
			return errors.Wrapf(ErrInvalidLocation, "location %d (%s): %v,%v", i, l.Name, l.Lat, l.Lng)
		}
	}

	return nil
}

// IDs returns the ID of every location, in order.
func IDs(locs []Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID()
	}

	return out
}
