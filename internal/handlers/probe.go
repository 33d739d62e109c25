package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// ReadyFunc reports whether a dependency can serve traffic.
type ReadyFunc func(ctx context.Context) error

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	checks map[string]ReadyFunc
}

// NewProbeHandler creates a new probe handler. Checks are keyed by the
// dependency name reported when they fail.
func NewProbeHandler(checks map[string]ReadyFunc) *ProbeHandler {
	return &ProbeHandler{checks: checks}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// It never calls the text-generation provider.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for name, check := range h.checks {
		if err := check(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
