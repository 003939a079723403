package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/vertexdash/internal/archive"
	"github.com/me/vertexdash/internal/backend"
	"github.com/me/vertexdash/internal/config"
	"github.com/me/vertexdash/internal/metrics"
	"github.com/me/vertexdash/internal/store"
	"github.com/me/vertexdash/internal/ui"
)

// Server is the vertexdash HTTP server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.DashboardConfig
	startTime time.Time
	store     store.Store
	backend   *backend.Client
	metrics   *metrics.Metrics // optional; nil disables /metrics
	archiver  archive.Archiver // optional; nil disables export archiving
	staticDir string
	ui        *ui.UI // UI handler for web interface
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithMetrics enables Prometheus metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithArchiver keeps a copy of every downloaded report.
func WithArchiver(a archive.Archiver) Option {
	return func(s *Server) {
		s.archiver = a
	}
}

// WithStaticDir serves /static/* from dir.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.DashboardConfig, st store.Store, client *backend.Client, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		backend:   client,
		staticDir: "ui/assets",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(st, client, logger, ui.Config{
		Secure:     cfg.Session.SecureCookie,
		SessionTTL: cfg.Session.TTL,
		LoginRPS:   cfg.Login.RPS,
		LoginBurst: cfg.Login.Burst,
	})
	if s.metrics != nil {
		s.ui.WithMetrics(s.metrics)
		client.SetObserver(s.metrics)
	}
	if s.archiver != nil {
		s.ui.WithArchiver(s.archiver)
	}

	s.routes()
	return s
}

// StartSweeper begins the expired-session sweep in a background goroutine.
func (s *Server) StartSweeper(ctx context.Context) error {
	return s.ui.StartSweeper(ctx, s.config.Session.SweepCron)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger, s.metrics))

	// Static files (JS, CSS, images)
	r.Handle("/static/*", ui.StaticHandler(s.staticDir))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)

	r.NotFound(s.handleNotFound)
}
