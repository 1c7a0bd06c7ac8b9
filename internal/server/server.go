package server

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do/v2"

	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/config"
	"github.com/esti34/capsule/internal/handlers"
	"github.com/esti34/capsule/internal/i18n"
	appmiddleware "github.com/esti34/capsule/internal/middleware"
	"github.com/esti34/capsule/internal/rendering"
	"github.com/esti34/capsule/internal/validation"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E      *echo.Echo
	Cfg    config.Provider
	Bundle *i18n.Bundle
	logger *slog.Logger

	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	languageHandler  *handlers.LanguageHandler
}

// New creates a Server from the services registered in i.
func New(i do.Injector) (*Server, error) {
	cfg, err := do.Invoke[config.Provider](i)
	if err != nil {
		return nil, fmt.Errorf("server: config: %w", err)
	}
	logger, err := do.Invoke[*slog.Logger](i)
	if err != nil {
		return nil, fmt.Errorf("server: logger: %w", err)
	}
	bundle, err := do.Invoke[*i18n.Bundle](i)
	if err != nil {
		return nil, fmt.Errorf("server: translations: %w", err)
	}
	api, err := do.Invoke[authflow.AuthAPI](i)
	if err != nil {
		return nil, fmt.Errorf("server: api client: %w", err)
	}
	v, err := do.Invoke[*validation.Validator](i)
	if err != nil {
		return nil, fmt.Errorf("server: validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appmiddleware.FromContext(c.Request().Context()).Info("Request handled",
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))

	// Configure and use session middleware. Each named session may override
	// these options; the auth tiers and the language cookie do.
	e.Use(session.Middleware(newCookieStore(cfg.GetSessionSecret(), cfg.GetSecureCookies())))
	e.Use(appmiddleware.Session(cfg.GetSecureCookies()))
	e.Use(appmiddleware.Language(bundle))

	return &Server{
		E:                e,
		Cfg:              cfg,
		Bundle:           bundle,
		logger:           logger,
		homeHandler:      handlers.NewHomeHandler(),
		authHandler:      handlers.NewAuthHandler(api, v),
		dashboardHandler: handlers.NewDashboardHandler(),
		languageHandler:  handlers.NewLanguageHandler(cfg.GetSecureCookies()),
	}, nil
}

// setupErrorHandling logs unexpected errors with a stack trace before echo
// turns them into a response. HTTP errors raised on purpose are not logged.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
