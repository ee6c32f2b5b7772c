package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is serving requests.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// DependencyChecker pings the storage backends. Ping maps each failing
// backend to its error; an empty map means healthy.
type DependencyChecker interface {
	Names() []string
	Ping(ctx context.Context) map[string]error
}

// ReadinessHandler handles GET /health/ready.
type ReadinessHandler struct {
	deps DependencyChecker
}

func NewReadinessHandler(deps DependencyChecker) *ReadinessHandler {
	return &ReadinessHandler{deps: deps}
}

// Readiness pings every backend and answers 503 when any is down.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	failures := h.deps.Ping(ctx)

	deps := make(map[string]dependencyStatus)
	for _, name := range h.deps.Names() {
		deps[name] = dependencyStatus{Status: "ok"}
	}
	for name, err := range failures {
		deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}

	if len(failures) > 0 {
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "degraded", Dependencies: deps})
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: "ok", Dependencies: deps})
}
