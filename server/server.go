// Package server exposes the optimizer over HTTP with fiber.
//
//	GET  /healthz       liveness
//	POST /v1/optimize   solve a caller-supplied cost matrix
//	POST /v1/route      fetch costs for locations, solve, and describe the route
package server

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/katalvlaran/tourplan/config"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/plan-systems/klog"
)

// Server holds what the handlers share.
type Server struct {
	cfg      config.Config
	provider provider.Provider
	validate *validator.Validate
}

// New builds the fiber app. p serves /v1/route; when nil that route answers
// 503.
func New(cfg config.Config, p provider.Provider) *fiber.App {
	s := &Server{cfg: cfg, provider: p, validate: validator.New()}

	app := fiber.New(fiber.Config{
		AppName:               "tourd",
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestLogger())

	app.Get("/healthz", s.health)
	v1 := app.Group("/v1")
	v1.Post("/optimize", s.optimize)
	v1.Post("/route", s.route)

	return app
}

// requestContext bounds a handler by the configured request timeout.
func (s *Server) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if s.cfg.Server.RequestTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Server.RequestTimeout)
	}

	return context.WithCancel(ctx)
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		if status >= fiber.StatusInternalServerError {
			klog.Warningf("server: %s %s -> %d in %s: %v", c.Method(), c.Path(), status, time.Since(start), err)
		} else {
			klog.V(2).Infof("server: %s %s -> %d in %s", c.Method(), c.Path(), status, time.Since(start))
		}

		return err
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
