package server

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/katalvlaran/tourplan/matrix"
	"github.com/katalvlaran/tourplan/provider"
	"github.com/katalvlaran/tourplan/tsp"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	var (
		fe *fiber.Error
		ve validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve),
		errors.Is(err, tsp.ErrInvalidInput),
		errors.Is(err, tsp.ErrEmptyInstance),
		errors.Is(err, matrix.ErrEmpty),
		errors.Is(err, matrix.ErrRagged),
		errors.Is(err, matrix.ErrNonInteger),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, provider.ErrInvalidLocation),
		errors.Is(err, provider.ErrUnknownMode):
		return fiber.StatusBadRequest
	case errors.Is(err, provider.ErrRouteNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, provider.ErrProviderUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, tsp.ErrCancelled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(errorResponse{Error: err.Error()})
}
