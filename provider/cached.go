package provider

import (
	"context"
	"time"

	"github.com/katalvlaran/tourplan/cache"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Cached serves matrices from Store when possible and otherwise asks Source,
// then persists the answer. A failed persist is logged and does not fail the
// request.
type Cached struct {
	Source Provider
	Store  cache.Store
}

// WithCache wraps src in a Cached provider; a nil store returns src unchanged.
func WithCache(src Provider, store cache.Store) Provider {
	if store == nil {
		return src
	}

	return &Cached{Source: src, Store: store}
}

// Metric implements Provider.
func (c *Cached) Metric() Metric { return c.Source.Metric() }

// CostMatrix implements Provider.
func (c *Cached) CostMatrix(ctx context.Context, locs []Location, mode Mode) (*matrix.Dense, error) {
	var (
		ids    = IDs(locs)
		metric = string(c.Source.Metric())
		key    = cache.Key(string(mode), metric, ids)
	)

	e, err := c.Store.Get(ctx, key)
	switch {
	case err == nil && e.Matches(ids, string(mode), metric):
		m, merr := e.Matrix()
		if merr == nil {
			klog.V(2).Infof("provider: cache hit %s (%d locations)", key, len(locs))
			return m, nil
		}
		klog.Warningf("provider: discarding cache entry %s: %v", key, merr)
	case err == nil:
		klog.Warningf("provider: cache entry %s belongs to another request, refetching", key)
	case errors.Is(err, cache.ErrNotFound):
		klog.V(2).Infof("provider: cache miss %s", key)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		klog.Warningf("provider: cache read %s: %v", key, err)
	}

	m, err := c.Source.CostMatrix(ctx, locs, mode)
	if err != nil {
		return nil, err
	}

	entry := cache.Entry{
		Locations: ids,
		Mode:      string(mode),
		Metric:    metric,
		Costs:     m.ToRows(),
		CreatedAt: time.Now().UTC(),
	}
	if err = c.Store.Put(ctx, key, entry); err != nil {
		klog.Warningf("provider: cache write %s: %v", key, err)
	}

	return m, nil
}
