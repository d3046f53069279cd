// Package httpserver exposes the webhook adapter over HTTP via Echo.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/metrics"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/adapter/webhook"
	"github.com/abhishekchotaliya/botmaster-twitter/internal/platform/config"
)

// Server wires middleware, routes, and the webhook adapter into an Echo
// instance.
type Server struct {
	echo   *echo.Echo
	config *config.Config

	adapter        *webhook.Adapter
	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler

	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer builds the HTTP server. The registry may be nil to disable
// metrics (tests).
func NewServer(cfg *config.Config, adapter *webhook.Adapter, reg *prometheus.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		adapter:      adapter,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	if reg != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(reg)
		srv.metricsHandler = metrics.Handler(reg)
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.echo.Use(s.requestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(correlationMiddleware)
	s.echo.Use(errorHandlingMiddleware())
	if s.httpMetrics != nil {
		s.echo.Use(s.httpMetrics.Middleware())
	}

	s.registerHealthRoutes()

	if s.metricsHandler != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))
	}

	s.echo.GET("/webhooks/twitter", s.handleChallenge)
	s.echo.POST("/webhooks/twitter", s.handleWebhook)
}

// Start blocks serving HTTP until Shutdown or failure.
func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
