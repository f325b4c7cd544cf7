// Package metrics defines and registers the custom Prometheus metrics of the
// task CRM API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// HTTPMiddleware adds the per-request histograms served next to them on
// /metrics.
package metrics

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskcrm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// GateDenialsTotal counts requests rejected by the access gate.
// Label:
//   - reason: "unauthorized" or "forbidden"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests rejected by the access gate.",
	},
	[]string{"reason"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - origin: "task" for POST /task, "customer" for POST /customer/create-task
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by creation path.",
	},
	[]string{"origin"},
)

var TasksAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_assigned_total",
		Help:      "Total number of tasks attached to a customer.",
	},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

var (
	httpOnce       sync.Once
	httpMiddleware echo.MiddlewareFunc
)

// HTTPMiddleware returns the echoprometheus request middleware. Its
// collectors are registered once per process, so every router built in the
// same process shares them.
func HTTPMiddleware() echo.MiddlewareFunc {
	httpOnce.Do(func() {
		mw, err := echoprometheus.MiddlewareConfig{
			Namespace: namespace,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}.ToMiddleware()
		if err != nil {
			panic(err)
		}
		httpMiddleware = mw
	})
	return httpMiddleware
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() echo.HandlerFunc {
	return echoprometheus.NewHandler()
}
