package config

import (
	"context"
	"os"

	"github.com/katalvlaran/tourplan/cache"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// OpenProvider builds the configured provider chain: the source named by
// provider.kind, wrapped in the configured cache. The returned close func
// releases the cache and is never nil.
func (c Config) OpenProvider() (provider.Provider, func() error, error) {
	var (
		src provider.Provider
		err error
	)
	switch c.Provider.Kind {
	case ProviderGoogle:
		src, err = provider.NewGoogle(c.Provider.APIKey, c.Provider.Metric)
		if err != nil {
			return nil, nil, err
		}
	default:
		src = provider.NewHaversine(c.Provider.Metric)
	}

	store, err := cache.Open(c.Cache.Kind, c.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return nil }
	if store != nil {
		closer = store.Close
		klog.V(2).Infof("config: %s provider behind %s cache", c.Provider.Kind, c.Cache.Kind)
	}

	return provider.WithCache(src, store), closer, nil
}

// Locations returns the route's locations, reading the OSM extract when one
// is configured.
func (c Config) Locations(ctx context.Context) ([]provider.Location, error) {
	if c.Route.OSMFile == "" {
		return c.Route.Locations, nil
	}
	f, err := os.Open(c.Route.OSMFile)
	if err != nil {
		return nil, errors.Wrap(err, "config: route.osm_file")
	}
	defer f.Close()

	return provider.ReadOSM(ctx, f, c.Route.OSMNames...)
}
