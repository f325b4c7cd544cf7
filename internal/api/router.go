package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/task-crm/docs"
	"github.com/99minutos/task-crm/internal/api/handler"
	"github.com/99minutos/task-crm/internal/api/metrics"
	"github.com/99minutos/task-crm/internal/api/middleware"
	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
	"github.com/99minutos/task-crm/internal/core/service"
	"github.com/99minutos/task-crm/internal/infrastructure/config"
	"github.com/99minutos/task-crm/internal/infrastructure/crypto"
	redisdb "github.com/99minutos/task-crm/internal/infrastructure/db/redis"
	"github.com/99minutos/task-crm/internal/infrastructure/storage"
)

// route pairs an endpoint with the access policy the gate enforces for it.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	policy  middleware.Policy
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, which disables login throttling and drops Redis from the
// readiness probe.
func NewRouter(cfg *config.Config, store *storage.Backend, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.HTTPMiddleware())
	e.Use(middleware.RequestLogger(log))

	// --- Dependencies ---
	hasher, err := crypto.NewHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var limiter ports.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb, cfg.RateLimit.LoginRatePerSec, cfg.RateLimit.LoginBurst)
	}

	authService := service.NewAuthService(store.Users, hasher, tokens, limiter, log)
	taskService := service.NewTaskService(store.Tasks, store.Users, log)
	customerService := service.NewCustomerService(store.Customers, store.Tasks, store.Users, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	customerHandler := handler.NewCustomerHandler(customerService)

	// --- API routes ---
	routes := []route{
		{http.MethodGet, "/hello-world", handler.Hello, middleware.Public()},

		{http.MethodPost, "/auth/register", authHandler.Register, middleware.Public()},
		{http.MethodPost, "/auth/login", authHandler.Login, middleware.Public()},

		{http.MethodPost, "/task", taskHandler.Create, middleware.Authenticated()},
		{http.MethodGet, "/task", taskHandler.List, middleware.Authenticated()},
		{http.MethodGet, "/task/:id", taskHandler.Get, middleware.Authenticated()},
		{http.MethodPut, "/task/:id", taskHandler.Update, middleware.Authenticated()},
		{http.MethodDelete, "/task/:id", taskHandler.Delete, middleware.Authenticated()},

		{http.MethodPost, "/customer", customerHandler.Create, middleware.Authenticated()},
		{http.MethodPost, "/customer/create-task", customerHandler.CreateTask, middleware.Authenticated()},
		{http.MethodPut, "/customer/assign-task/:customerId/:taskId", customerHandler.AssignTask, middleware.Authenticated()},
		{http.MethodGet, "/customer", customerHandler.List, middleware.RequireRoles(domain.RoleAdmin)},
	}

	g := e.Group(cfg.APIPrefix)
	for _, r := range routes {
		g.Add(r.method, r.path, r.handler, middleware.Gate(tokens, r.policy))
	}

	// --- Health probes, metrics and docs (no auth required) ---
	deps := []handler.Dependency{{Name: store.Name, Ping: store.Ping}}
	if rdb != nil {
		deps = append(deps, handler.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	health := handler.NewHealthHandler(deps...)

	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", metrics.Handler())

	docs.SwaggerInfo.BasePath = cfg.APIPrefix
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e, nil
}
