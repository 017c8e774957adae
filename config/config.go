// Package config loads tourplan's YAML configuration and the .env file that
// carries secrets such as GOOGLE_MAPS_API_KEY.
//
// Precedence, lowest first: Default(), the YAML file, environment variables.
package config

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/tourplan/cache"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvAPIKey names the variable holding the Google Maps API key.
const EnvAPIKey = "GOOGLE_MAPS_API_KEY"

// Provider kinds.
const (
	ProviderGoogle    = "google"
	ProviderHaversine = "haversine"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration file.
type Config struct {
	Optimizer Optimizer `yaml:"optimizer"`
	Provider  Provider  `yaml:"provider"`
	Cache     Cache     `yaml:"cache"`
	Route     Route     `yaml:"route"`
	Server    Server    `yaml:"server"`
}

// Optimizer mirrors tsp.Options.
type Optimizer struct {
	ExactThreshold   int              `yaml:"exact_threshold"`
	Strategy         tsp.Strategy     `yaml:"strategy"`
	Construction     tsp.Construction `yaml:"construction"`
	TimeBudget       time.Duration    `yaml:"time_budget"`
	MaxPasses        int              `yaml:"max_passes"`
	MaxSwapAttempts  int64            `yaml:"max_swap_attempts"`
	Workers          int              `yaml:"workers"`
	FirstImprovement bool             `yaml:"first_improvement"`
}

// Provider selects where cost matrices come from.
type Provider struct {
	Kind   string          `yaml:"kind"`
	Mode   provider.Mode   `yaml:"mode"`
	Metric provider.Metric `yaml:"metric"`
	// APIKey is normally left empty and read from GOOGLE_MAPS_API_KEY.
	APIKey string `yaml:"api_key"`
}

// Cache selects the matrix cache.
type Cache struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// Route is the problem instance solved by the CLI.
type Route struct {
	Depot     int                 `yaml:"depot"`
	Locations []provider.Location `yaml:"locations"`
	// OSMFile, when set, supplies the locations from an OSM PBF extract;
	// OSMNames picks and orders named nodes from it.
	OSMFile  string   `yaml:"osm_file"`
	OSMNames []string `yaml:"osm_names"`
}

// Server configures cmd/tourd.
type Server struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	BodyLimit      int           `yaml:"body_limit"`
}

// Default returns a configuration that runs offline: haversine distances,
// an on-disk badger cache and the optimizer defaults.
func Default() Config {
	opts := tsp.DefaultOptions()

	return Config{
		Optimizer: Optimizer{
			ExactThreshold: opts.ExactThreshold,
			Strategy:       opts.Strategy,
			Construction:   opts.Construction,
		},
		Provider: Provider{
			Kind:   ProviderHaversine,
			Mode:   provider.ModeDriving,
			Metric: provider.MetricDistance,
		},
		Cache: Cache{
			Kind: cache.KindBadger,
			Path: ".tourplan/matrices",
		},
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
			BodyLimit:      4 << 20,
		},
	}
}

// LoadEnv loads the given .env files (".env" when none) into the process
// environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "config: load %s", f)
		}
	}

	return nil
}

// Load reads path (skipped when empty) over Default and applies environment
// overrides. It does not call Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: read %s", path)
		}
		if err = decode(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

// decode unmarshals YAML strictly: unknown keys are errors.
func decode(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}

	return nil
}

func (c *Config) applyEnv() {
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv(EnvAPIKey)
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	o := c.Optimizer
	switch {
	case o.ExactThreshold < 0 || o.ExactThreshold > tsp.MaxExactNodes:
		return errors.Wrapf(ErrInvalid, "optimizer.exact_threshold %d not in [0, %d]", o.ExactThreshold, tsp.MaxExactNodes)
	case o.TimeBudget < 0, o.MaxPasses < 0, o.MaxSwapAttempts < 0, o.Workers < 0:
		return errors.Wrap(ErrInvalid, "optimizer: negative limit")
	}

	switch c.Provider.Kind {
	case ProviderHaversine:
	case ProviderGoogle:
		if c.Provider.APIKey == "" {
			return errors.Wrapf(ErrInvalid, "provider: google needs an API key (set %s)", EnvAPIKey)
		}
	default:
		return errors.Wrapf(ErrInvalid, "provider.kind %q", c.Provider.Kind)
	}
	if _, err := provider.ParseMode(string(c.Provider.Mode)); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if _, err := provider.ParseMetric(string(c.Provider.Metric)); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}

	switch c.Cache.Kind {
	case cache.KindBadger, cache.KindMemory, cache.KindNone, "":
	case cache.KindFile:
		if c.Cache.Path == "" {
			return errors.Wrap(ErrInvalid, "cache: file store needs a path")
		}
	default:
		return errors.Wrapf(ErrInvalid, "cache.kind %q", c.Cache.Kind)
	}

	if n := len(c.Route.Locations); n > 0 && (c.Route.Depot < 0 || c.Route.Depot >= n) {
		return errors.Wrapf(ErrInvalid, "route.depot %d not in [0, %d)", c.Route.Depot, n)
	}
	if c.Route.Depot < 0 {
		return errors.Wrapf(ErrInvalid, "route.depot %d", c.Route.Depot)
	}
	if c.Server.RequestTimeout < 0 || c.Server.BodyLimit < 0 {
		return errors.Wrap(ErrInvalid, "server: negative limit")
	}

	return nil
}

// OptimizerOptions converts the optimizer section into tsp.Options.
func (c Config) OptimizerOptions() tsp.Options {
	o := c.Optimizer

	return tsp.Options{
		ExactThreshold:   o.ExactThreshold,
		Strategy:         o.Strategy,
		Construction:     o.Construction,
		TimeBudget:       o.TimeBudget,
		MaxPasses:        o.MaxPasses,
		MaxSwapAttempts:  o.MaxSwapAttempts,
		Workers:          o.Workers,
		FirstImprovement: o.FirstImprovement,
	}
}
