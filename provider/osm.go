package provider

import (
	"context"
	"io"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// ReadOSM returns every node of an OSM PBF extract that carries a "name"
// tag, in file order. When names is non-empty only those names are kept, in
// the order given, and a missing name is an error.
func ReadOSM(ctx context.Context, r io.Reader, names ...string) ([]Location, error) {
	scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	var (
		found  []Location
		byName = make(map[string]Location)
	)
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		name := node.Tags.Find("name")
		if name == "" {
			continue
		}
		loc := Location{Name: name, Lat: node.Lat, Lng: node.Lon}
		if _, dup := byName[name]; !dup {
			byName[name] = loc
		}
		found = append(found, loc)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "provider: read osm")
	}
	if len(names) == 0 {
		return found, nil
	}

	return pickNamed(byName, names)
}

// pickNamed returns the locations called names, in that order.
func pickNamed(byName map[string]Location, names []string) ([]Location, error) {
	out := make([]Location, 0, len(names))
	for _, n := range names {
		loc, ok := byName[n]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidLocation, "osm: no node named %q", n)
		}
		out = append(out, loc)
	}

	return out, nil
}
