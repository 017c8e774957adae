package report

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// mapsDirBase is the Google Maps directions endpoint (Maps URLs API).
const mapsDirBase = "https://www.google.com/maps/dir/?api=1"

// MaxMapsWaypoints is the number of intermediate stops the Maps URLs API
// accepts in one directions link.
const MaxMapsWaypoints = 9

// ErrTooManyWaypoints is returned by MapsURL when the tour has more interior
// stops than one link can carry; use MapsURLs instead.
var ErrTooManyWaypoints = errors.New("report: too many waypoints for one maps link")

// MapsURL returns a Google Maps directions link that starts and ends at the
// depot and visits the interior stops in tour order. Tours with more than
// MaxMapsWaypoints interior stops fail with ErrTooManyWaypoints rather than
// producing a link Maps would cut short.
func MapsURL(r Route) (string, error) {
	if err := checkTour(r); err != nil {
		return "", err
	}
	if n := len(r.Result.Tour) - 2; n > MaxMapsWaypoints {
		return "", errors.Wrapf(ErrTooManyWaypoints, "%d interior stops, limit %d", n, MaxMapsWaypoints)
	}

	return r.mapsLink(0, len(r.Result.Tour)-1), nil
}

// MapsURLs splits the tour into consecutive directions links of at most
// MaxMapsWaypoints waypoints each. Every link starts where the previous one
// ended; the first starts and the last ends at the depot.
func MapsURLs(r Route) ([]string, error) {
	if err := checkTour(r); err != nil {
		return nil, err
	}

	var (
		last = len(r.Result.Tour) - 1
		out  []string
	)
	for from := 0; from < last; {
		to := min(from+MaxMapsWaypoints+1, last)
		out = append(out, r.mapsLink(from, to))
		from = to
	}

	return out, nil
}

func checkTour(r Route) error {
	tour := r.Result.Tour
	if len(tour) < 2 {
		return errors.New("report: empty tour")
	}
	if len(r.Locations) != len(tour)-1 {
		return errors.Errorf("report: %d locations for a tour over %d", len(r.Locations), len(tour)-1)
	}

	return nil
}

// mapsLink builds the link from tour position from to position to.
func (r Route) mapsLink(from, to int) string {
	tour := r.Result.Tour
	params := url.Values{}
	params.Add("origin", r.Locations[tour[from]].Query())
	params.Add("destination", r.Locations[tour[to]].Query())
	if interior := tour[from+1 : to]; len(interior) > 0 {
		stops := make([]string, len(interior))
		for i, v := range interior {
			stops[i] = r.Locations[v].Query()
		}
		params.Add("waypoints", strings.Join(stops, "|"))
	}
	if r.Mode != "" {
		params.Add("travelmode", string(r.Mode))
	}

	return mapsDirBase + "&" + params.Encode()
}
