package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Mostofa-Abedin/trello/docs"
	"github.com/Mostofa-Abedin/trello/internal/api/handler"
	"github.com/Mostofa-Abedin/trello/internal/api/middleware"
	"github.com/Mostofa-Abedin/trello/internal/core/ports"
	"github.com/Mostofa-Abedin/trello/internal/pkg/metrics"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log   zerolog.Logger
	Users ports.UserService
	// Readiness lists the checks behind GET /health/ready.
	Readiness []handler.Dependency
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = prometheus.Gatherers{deps.Registry, prometheus.DefaultGatherer}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Users)
	e.POST("/auth/register", authHandler.Register)

	// --- User read-back ---
	userHandler := handler.NewUserHandler(deps.Users)
	e.GET("/users", userHandler.List)
	e.GET("/users/:id", userHandler.Get)

	// --- Operational endpoints ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
