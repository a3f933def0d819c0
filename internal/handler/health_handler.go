package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hospital/internal/health"
)

const readinessTimeout = 5 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checker *health.Checker
	started time.Time
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker, started: time.Now()}
}

// Liveness godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	uptime := math.Round(time.Since(h.started).Seconds()*1000) / 1000
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"uptime": uptime,
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Pings the database and the cache. A cache outage only degrades readiness.
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Failure 503 {object} health.Status
// @Router /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	status := h.checker.Check(ctx)
	code := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}

// Index godoc
// @Summary API index
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "Hospital System API",
		"version": "v1",
	})
}
