package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["status"] != "ok" || resp["uptime"] == nil {
		t.Fatalf("unexpected liveness body: %v", resp)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all up", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
		h := NewHealthHandler(Dependency{Name: "sqlite", Ping: ok}, Dependency{Name: "redis", Ping: ok})

		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("one down", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
		h := NewHealthHandler(Dependency{Name: "mongodb", Ping: ok}, Dependency{Name: "redis", Ping: down})

		if err := h.Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}

		resp := decodeEnvelope(t, rec)
		if resp["status"] != "degraded" {
			t.Fatalf("expected degraded, got %v", resp["status"])
		}
		deps := resp["dependencies"].(map[string]any)
		redis := deps["redis"].(map[string]any)
		if redis["status"] != "unhealthy" || redis["error"] != "connection refused" {
			t.Fatalf("unexpected redis status: %+v", redis)
		}
	})
}

func TestHealthHandler_ReadinessWithoutDependencies(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")

	if err := NewHealthHandler().Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
