// Command tourplan plans a closed delivery route from a YAML configuration
// or solves a raw cost matrix.
//
//	tourplan -config tourplan.yaml [-xlsx route.xlsx]
//	tourplan -costs costs.json [-depot 0]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/tourplan/config"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/report"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

func main() {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, flag.CommandLine, os.Args[1:], os.Stdout)
	stop()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tourplan:", err)
		os.Exit(1)
	}
}

// flags are the command-line overrides applied on top of the config file.
type flags struct {
	configPath     string
	envFile        string
	costsPath      string
	depot          int
	xlsxPath       string
	exactThreshold int
	strategy       string
	timeBudget     time.Duration
}

func run(ctx context.Context, fs *flag.FlagSet, args []string, stdout io.Writer) error {
	var f flags
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.envFile, "env", ".env", "dotenv file with secrets")
	fs.StringVar(&f.costsPath, "costs", "", "JSON file holding a square cost matrix; skips the provider")
	fs.IntVar(&f.depot, "depot", -1, "depot index (overrides route.depot)")
	fs.StringVar(&f.xlsxPath, "xlsx", "", "also write the route to this .xlsx file")
	fs.IntVar(&f.exactThreshold, "exact-threshold", -1, "largest instance solved exactly")
	fs.StringVar(&f.strategy, "strategy", "", "auto, exact or heuristic")
	fs.DurationVar(&f.timeBudget, "time-budget", -1, "wall-clock limit for one solve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadEnv(f.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err = f.apply(&cfg); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	var route report.Route
	if f.costsPath != "" {
		route, err = solveCosts(ctx, cfg, f.costsPath)
	} else {
		route, err = solveRoute(ctx, cfg)
	}
	if err != nil {
		return err
	}

	if err = report.WriteText(stdout, route); err != nil {
		return err
	}
	if route.Locations != nil {
		links, err := report.MapsURLs(route)
		if err != nil {
			return err
		}
		for i, link := range links {
			if len(links) == 1 {
				fmt.Fprintf(stdout, "Google Maps: %s\n", link)
				continue
			}
			fmt.Fprintf(stdout, "Google Maps (%d/%d): %s\n", i+1, len(links), link)
		}
	}
	if f.xlsxPath != "" {
		return writeXLSX(f.xlsxPath, route)
	}

	return nil
}

func (f flags) apply(cfg *config.Config) error {
	if f.depot >= 0 {
		cfg.Route.Depot = f.depot
	}
	if f.exactThreshold >= 0 {
		cfg.Optimizer.ExactThreshold = f.exactThreshold
	}
	if f.timeBudget >= 0 {
		cfg.Optimizer.TimeBudget = f.timeBudget
	}
	if f.strategy != "" {
		s, err := tsp.ParseStrategy(f.strategy)
		if err != nil {
			return err
		}
		cfg.Optimizer.Strategy = s
	}

	return nil
}

// solveRoute fetches the configured locations' costs and solves them.
func solveRoute(ctx context.Context, cfg config.Config) (report.Route, error) {
	locs, err := cfg.Locations(ctx)
	if err != nil {
		return report.Route{}, err
	}
	if len(locs) == 0 {
		return report.Route{}, errors.New("no locations: set route.locations, route.osm_file or -costs")
	}

	p, closeCache, err := cfg.OpenProvider()
	if err != nil {
		return report.Route{}, err
	}
	defer func() {
		if cerr := closeCache(); cerr != nil {
			klog.Warningf("tourplan: closing cache: %v", cerr)
		}
	}()

	costs, err := p.CostMatrix(ctx, locs, cfg.Provider.Mode)
	if err != nil {
		return report.Route{}, err
	}
	res, err := tsp.Optimize(ctx, costs, cfg.Route.Depot, cfg.OptimizerOptions())
	if err != nil {
		return report.Route{}, err
	}
	klog.V(2).Infof("tourplan: %d locations solved by %s in %s", len(locs), res.Strategy, res.Elapsed)

	return report.Route{
		Result:    res,
		Locations: locs,
		Costs:     costs,
		Unit:      p.Metric().Unit(),
		Mode:      cfg.Provider.Mode,
	}, nil
}

// solveCosts solves a raw matrix read from a JSON file.
func solveCosts(ctx context.Context, cfg config.Config, path string) (report.Route, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return report.Route{}, errors.Wrap(err, "read costs")
	}
	var rows [][]float64
	if err = json.Unmarshal(raw, &rows); err != nil {
		return report.Route{}, errors.Wrapf(err, "parse costs %s", path)
	}
	costs, err := matrix.NewFromFloatRows(rows)
	if err != nil {
		return report.Route{}, errors.Wrapf(err, "costs %s", path)
	}

	res, err := tsp.Optimize(ctx, costs, cfg.Route.Depot, cfg.OptimizerOptions())
	if err != nil {
		return report.Route{}, err
	}

	return report.Route{Result: res, Costs: costs}, nil
}

func writeXLSX(path string, r report.Route) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create xlsx")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return report.WriteXLSX(f, r)
}
