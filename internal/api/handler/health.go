package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Dependency is a backing service the readiness probe pings by name.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readiness struct {
	Status       string                 `json:"status"`
	Dependencies map[string]probeResult `json:"dependencies"`
}

// HealthHandler serves the liveness and readiness probes. Both sit outside
// the API prefix and the response envelope.
type HealthHandler struct {
	deps    []Dependency
	started time.Time
}

func NewHealthHandler(deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, started: time.Now()}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /health/ready. A single failing dependency turns the
// whole report into 503 "degraded".
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	report := readiness{Status: "ok", Dependencies: make(map[string]probeResult, len(h.deps))}
	code := http.StatusOK
	for _, d := range h.deps {
		res := probe(ctx, d)
		if res.Error != "" {
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		report.Dependencies[d.Name] = res
	}
	return c.JSON(code, report)
}

func probe(ctx context.Context, d Dependency) probeResult {
	if err := d.Ping(ctx); err != nil {
		return probeResult{Status: "unhealthy", Error: err.Error()}
	}
	return probeResult{Status: "ok"}
}
