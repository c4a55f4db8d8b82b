// Package server exposes day plans over a JSON HTTP API for the browser
// front-end.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
)

// Server serves the plan API.
type Server struct {
	echo *echo.Echo
	repo slot.Repository
	cfg  *config.Config
	now  func() time.Time

	// mu serializes load-modify-save cycles so each mutation sees the
	// result of the previous one.
	mu sync.Mutex
}

// New creates a server backed by repo. Plans that do not exist yet are
// generated from cfg.Planner.
func New(repo slot.Repository, cfg *config.Config) *Server {
	s := &Server{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	v1 := s.echo.Group("/api/v1")
	plans := v1.Group("/plans/:date")
	plans.GET("", s.getPlan)
	plans.PUT("/settings", s.putSettings)
	plans.PUT("/slots/:id", s.putSlot)
	plans.DELETE("/slots/:id", s.deleteSlot)
	plans.GET("/export/:format", s.exportPlan)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	logger.Info("server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return success(c, map[string]string{"status": "ok"}, "healthy")
}
