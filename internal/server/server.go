package server

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/promptveil/promptveil/internal/audit"
	"github.com/promptveil/promptveil/internal/cache"
	"github.com/promptveil/promptveil/internal/config"
	"github.com/promptveil/promptveil/internal/events"
	"github.com/promptveil/promptveil/internal/logger"
	"github.com/promptveil/promptveil/internal/privacy"
	"github.com/promptveil/promptveil/internal/security"
	"github.com/promptveil/promptveil/internal/web"
	"go.uber.org/zap"
)

// Server hosts the detection engine behind an HTTP API with a live
// event feed.
type Server struct {
	config      *config.Config
	logger      *logger.Logger
	detector    *privacy.Detector
	scanCache   *cache.ScanCache
	auditSink   audit.Sink
	hub         *events.Hub
	rateLimiter *security.RateLimiter
	router      *mux.Router
	server      *http.Server

	startTime       time.Time
	totalScans      int64
	totalDetections int64
}

// New creates a new server instance wiring the engine, optional cache
// and audit sink, and the event hub.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	detector, err := privacy.New(privacy.Config{
		Weights:           cfg.Engine.DetectorWeights(),
		MaxMatchesPerRule: cfg.Engine.MaxMatchesPerRule,
	}, log.WithComponent("privacy"))
	if err != nil {
		return nil, fmt.Errorf("failed to create detection engine: %w", err)
	}

	var scanCache *cache.ScanCache
	if cfg.Cache.Enabled {
		scanCache, err = cache.New(&cfg.Cache, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create scan cache: %w", err)
		}
	}

	var auditSink audit.Sink = audit.NopSink{}
	if cfg.Audit.Enabled {
		sink, err := audit.NewPostgresSink(&cfg.Audit, log.WithComponent("audit").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit sink: %w", err)
		}
		auditSink = sink
	}

	hub := events.NewHub(&events.HubConfig{
		BroadcastDetections: cfg.Events.BroadcastDetections,
		BroadcastRequests:   cfg.Events.BroadcastRequests,
		BroadcastSystem:     cfg.Events.BroadcastSystem,
		BroadcastConns:      cfg.Events.BroadcastConns,
		AllowedOrigins:      cfg.Events.AllowedOrigins,
	}, log.WithComponent("events").Logger)

	s := &Server{
		config:      cfg,
		logger:      log.WithComponent("server"),
		detector:    detector,
		scanCache:   scanCache,
		auditSink:   auditSink,
		hub:         hub,
		rateLimiter: security.NewRateLimiter(&cfg.Security),
		router:      mux.NewRouter(),
		startTime:   time.Now(),
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	s.router.HandleFunc("/", web.ServeDashboard).Methods("GET")
	s.router.HandleFunc("/dashboard", web.ServeDashboard).Methods("GET")

	if s.config.Events.Enabled {
		s.router.HandleFunc(s.config.Events.Path, s.handleWebSocket).Methods("GET")
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/detect", s.handleDetect).Methods("POST")
}

// Start starts the HTTP server and the event hub.
func (s *Server) Start() error {
	s.logger.Info("Starting PromptVeil server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("cache_enabled", s.config.Cache.Enabled),
		zap.Bool("audit_enabled", s.config.Audit.Enabled),
	)

	go s.hub.Run()
	s.rateLimiter.StartCleanupRoutine()

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server and releases resources.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping PromptVeil server")

	if s.scanCache != nil {
		if err := s.scanCache.Close(); err != nil {
			s.logger.Warn("Failed to close scan cache", zap.Error(err))
		}
	}
	if err := s.auditSink.Close(); err != nil {
		s.logger.Warn("Failed to close audit sink", zap.Error(err))
	}

	return s.server.Shutdown(ctx)
}

// handleWebSocket hands connections to the event hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWebSocket(w, r)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the event hub for broadcasting.
func (s *Server) Hub() *events.Hub {
	return s.hub
}

func (s *Server) uptime() string {
	return time.Since(s.startTime).Round(time.Second).String()
}

func (s *Server) scanCounters() (int64, int64) {
	return atomic.LoadInt64(&s.totalScans), atomic.LoadInt64(&s.totalDetections)
}
