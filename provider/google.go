package provider

import (
	"context"
	"time"

	"github.com/katalvlaran/tourplan/matrix"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"googlemaps.github.io/maps"
)

// googleBlock is the largest origin (and destination) count per request;
// 10×10 keeps every request within the 100-element limit.
const googleBlock = 10

// DistanceMatrixClient is the part of *maps.Client that Google uses.
type DistanceMatrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// Google fetches matrices from the Google Distance Matrix API.
type Google struct {
	client DistanceMatrixClient
	metric Metric
}

// NewGoogle returns a Google provider authenticated with apiKey.
func NewGoogle(apiKey string, metric Metric) (*Google, error) {
	if apiKey == "" {
		return nil, errors.Wrap(ErrProviderUnavailable, "google: missing API key")
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrapf(ErrProviderUnavailable, "google: %v", err)
	}

	return NewGoogleWithClient(c, metric), nil
}

// NewGoogleWithClient returns a Google provider over an existing client.
func NewGoogleWithClient(c DistanceMatrixClient, metric Metric) *Google {
	return &Google{client: c, metric: metric}
}

// Metric implements Provider.
func (g *Google) Metric() Metric { return g.metric }

// CostMatrix implements Provider. Locations are sent in blocks of at most
// 10 origins × 10 destinations and the answers stitched together.
func (g *Google) CostMatrix(ctx context.Context, locs []Location, mode Mode) (*matrix.Dense, error) {
	if err := checkLocations(locs); err != nil {
		return nil, err
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	n := len(locs)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	queries := make([]string, n)
	for i, l := range locs {
		queries[i] = l.Query()
	}

	var requests int
	for oi := 0; oi < n; oi += googleBlock {
		oe := min(oi+googleBlock, n)
		for di := 0; di < n; di += googleBlock {
			de := min(di+googleBlock, n)
			if err = g.fetchBlock(ctx, m, locs, queries, mode, oi, oe, di, de); err != nil {
				return nil, err
			}
			requests++
		}
	}
	klog.V(2).Infof("provider: google matrix %d×%d (%s, %s) in %d requests", n, n, mode, g.metric, requests)

	return m, nil
}

// fetchBlock fills m[oi:oe][di:de] from one API call.
func (g *Google) fetchBlock(ctx context.Context, m *matrix.Dense, locs []Location, queries []string, mode Mode, oi, oe, di, de int) error {
	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      queries[oi:oe],
		Destinations: queries[di:de],
		Mode:         maps.Mode(mode),
		Units:        maps.UnitsMetric,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return errors.Wrapf(ErrProviderUnavailable, "google: %v", err)
	}
	if resp == nil || len(resp.Rows) != oe-oi {
		return errors.Wrap(ErrProviderUnavailable, "google: malformed response")
	}

	for r, row := range resp.Rows {
		if len(row.Elements) != de-di {
			return errors.Wrapf(ErrProviderUnavailable, "google: row %d has %d elements, want %d", oi+r, len(row.Elements), de-di)
		}
		i := oi + r
		for c, el := range row.Elements {
			j := di + c
			if i == j {
				continue
			}
			if el == nil || el.Status != "OK" {
				status := "missing"
				if el != nil {
					status = el.Status
				}
				return errors.Wrapf(ErrRouteNotFound, "%s → %s: %s", locs[i].Name, locs[j].Name, status)
			}
			var v int64
			if g.metric == MetricDuration {
				v = int64(el.Duration.Round(time.Second) / time.Second)
			} else {
				v = int64(el.Distance.Meters)
			}
			if err = m.Set(i, j, v); err != nil {
				return err
			}
		}
	}

	return nil
}
