package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/katalvlaran/tourplan/report"
	"github.com/katalvlaran/tourplan/tsp"
	"github.com/pkg/errors"
)

// optionsRequest overrides the configured optimizer options per request.
// Absent fields keep the configured value.
type optionsRequest struct {
	ExactThreshold   *int              `json:"exact_threshold" validate:"omitempty,min=0"`
	Strategy         *tsp.Strategy     `json:"strategy"`
	Construction     *tsp.Construction `json:"construction"`
	TimeBudgetMS     *int64            `json:"time_budget_ms" validate:"omitempty,min=0"`
	MaxPasses        *int              `json:"max_passes" validate:"omitempty,min=0"`
	FirstImprovement *bool             `json:"first_improvement"`
}

type optimizeRequest struct {
	Costs   [][]float64     `json:"costs" validate:"required"`
	Depot   int             `json:"depot" validate:"min=0"`
	Options *optionsRequest `json:"options"`
}

type routeRequest struct {
	Locations []provider.Location `json:"locations" validate:"required,min=1,dive"`
	Depot     int                 `json:"depot" validate:"min=0"`
	Mode      string              `json:"mode"`
	Options   *optionsRequest     `json:"options"`
}

type resultResponse struct {
	Tour         []int          `json:"tour"`
	Cost         int64          `json:"cost"`
	Strategy     tsp.Strategy   `json:"strategy"`
	Construction string         `json:"construction,omitempty"`
	InitialCost  int64          `json:"initial_cost,omitempty"`
	LowerBound   int64          `json:"lower_bound"`
	Optimal      bool           `json:"optimal"`
	Partial      bool           `json:"partial"`
	Stop         tsp.StopReason `json:"stop"`
	Passes       int            `json:"passes"`
	Moves        int            `json:"moves"`
	Evaluated    int64          `json:"evaluated"`
	ElapsedMS    int64          `json:"elapsed_ms"`
}

type routeResponse struct {
	resultResponse
	Mode  provider.Mode `json:"mode"`
	Unit  string        `json:"unit"`
	Steps []report.Step `json:"steps"`
	// MapsURL is set when the tour fits one link; MapsURLs always holds the
	// consecutive links covering the tour.
	MapsURL  string   `json:"maps_url,omitempty"`
	MapsURLs []string `json:"maps_urls"`
}

func newResultResponse(res tsp.Result) resultResponse {
	out := resultResponse{
		Tour:       res.Tour,
		Cost:       res.Cost,
		LowerBound: res.LowerBound,
		Strategy:   res.Strategy,
		Optimal:    res.Optimal,
		Partial:    res.Partial,
		Stop:       res.Stop,
		Passes:     res.Passes,
		Moves:      res.Moves,
		Evaluated:  res.Evaluated,
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
	if res.Strategy == tsp.StrategyHeuristic {
		out.Construction = res.Construction.String()
		out.InitialCost = res.InitialCost
	}

	return out
}

// options merges a request override onto the configured options.
func (s *Server) options(o *optionsRequest) tsp.Options {
	opts := s.cfg.OptimizerOptions()
	if o == nil {
		return opts
	}
	if o.ExactThreshold != nil {
		opts.ExactThreshold = *o.ExactThreshold
	}
	if o.Strategy != nil {
		opts.Strategy = *o.Strategy
	}
	if o.Construction != nil {
		opts.Construction = *o.Construction
	}
	if o.TimeBudgetMS != nil {
		opts.TimeBudget = time.Duration(*o.TimeBudgetMS) * time.Millisecond
	}
	if o.MaxPasses != nil {
		opts.MaxPasses = *o.MaxPasses
	}
	if o.FirstImprovement != nil {
		opts.FirstImprovement = *o.FirstImprovement
	}

	return opts
}

// parse decodes and validates the JSON body into req.
func (s *Server) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}

	return s.validate.Struct(req)
}

func (s *Server) optimize(c *fiber.Ctx) error {
	var req optimizeRequest
	if err := s.parse(c, &req); err != nil {
		return err
	}

	costs, err := matrix.NewFromFloatRows(req.Costs)
	if err != nil {
		if errors.Is(err, matrix.ErrEmpty) {
			return tsp.ErrEmptyInstance
		}
		return errors.Wrap(tsp.ErrInvalidInput, err.Error())
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()
	res, err := tsp.Optimize(ctx, costs, req.Depot, s.options(req.Options))
	if err != nil {
		return err
	}

	return c.JSON(newResultResponse(res))
}

func (s *Server) route(c *fiber.Ctx) error {
	if s.provider == nil {
		return errors.Wrap(provider.ErrProviderUnavailable, "no provider configured")
	}

	var req routeRequest
	if err := s.parse(c, &req); err != nil {
		return err
	}
	mode := s.cfg.Provider.Mode
	if req.Mode != "" {
		m, err := provider.ParseMode(req.Mode)
		if err != nil {
			return err
		}
		mode = m
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	costs, err := s.provider.CostMatrix(ctx, req.Locations, mode)
	if err != nil {
		return err
	}
	res, err := tsp.Optimize(ctx, costs, req.Depot, s.options(req.Options))
	if err != nil {
		return err
	}

	r := report.Route{
		Result:    res,
		Locations: req.Locations,
		Costs:     costs,
		Unit:      s.provider.Metric().Unit(),
		Mode:      mode,
	}
	steps, err := r.Steps()
	if err != nil {
		return err
	}
	links, err := report.MapsURLs(r)
	if err != nil {
		return err
	}
	var single string
	if len(links) == 1 {
		single = links[0]
	}

	return c.JSON(routeResponse{
		resultResponse: newResultResponse(res),
		Mode:           mode,
		Unit:           r.Unit,
		Steps:          steps,
		MapsURL:        single,
		MapsURLs:       links,
	})
}
