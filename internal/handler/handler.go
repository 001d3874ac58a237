package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/marcuspimenta/bestv/internal/browse"
	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/service"
	"github.com/marcuspimenta/bestv/internal/tmdb"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler creates a HealthHandler. Checks are optional.
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c fiber.Ctx) error {
	deps := fiber.Map{}
	for name, check := range h.checks {
		if err := check(c.Context()); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}
	return c.JSON(fiber.Map{
		"status":       "ok",
		"service":      "catalog-service",
		"dependencies": deps,
	})
}

// statusFor maps an error to its HTTP status. fallback is used for errors
// that carry no classification.
func statusFor(err error, fallback int) int {
	switch {
	case service.IsInvalidInput(err), errors.Is(err, browse.ErrInvalidParams):
		return fiber.StatusBadRequest
	case errors.Is(err, browse.ErrScreenNotFound), errors.Is(err, browse.ErrWorkNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, browse.ErrLoadInFlight):
		return fiber.StatusConflict
	case errors.Is(err, tmdb.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, browse.ErrMutationFailed):
		return fiber.StatusInternalServerError
	case errors.Is(err, browse.ErrLoadFailed):
		return fiber.StatusBadGateway
	}
	return fallback
}

// fail writes the error response for err.
func fail(c fiber.Ctx, err error, fallback int) error {
	code := statusFor(err, fallback)
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func workType(c fiber.Ctx) (models.WorkType, error) {
	return models.ParseWorkType(c.Params("type"))
}

func positiveID(c fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", service.ErrInvalidID, name, c.Params(name))
	}
	return id, nil
}

func workKey(c fiber.Ctx) (models.WorkKey, error) {
	t, err := workType(c)
	if err != nil {
		return models.WorkKey{}, err
	}
	id, err := positiveID(c, "id")
	if err != nil {
		return models.WorkKey{}, err
	}
	return models.WorkKey{ID: id, Type: t}, nil
}
