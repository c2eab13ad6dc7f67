// Package api serves the planning dashboard over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/vsinha/planboard/pkg/application/services/ingest"
	"github.com/vsinha/planboard/pkg/application/services/orchestration"
	"github.com/vsinha/planboard/pkg/infrastructure/config"
	"github.com/vsinha/planboard/pkg/infrastructure/metrics"
)

// Server holds the handlers' collaborators
type Server struct {
	orchestrator *orchestration.PlanningOrchestrator
	ingest       *ingest.Service
	metrics      *metrics.Metrics
	logger       *slog.Logger

	allowedOrigins []string
	maxUploadBytes int64
	defaultHorizon int
}

func NewServer(
	cfg *config.Config,
	orchestrator *orchestration.PlanningOrchestrator,
	ingestService *ingest.Service,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		orchestrator:   orchestrator,
		ingest:         ingestService,
		metrics:        m,
		logger:         logger,
		allowedOrigins: cfg.Server.AllowedOrigins,
		maxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		defaultHorizon: cfg.Planning.DefaultHorizonWeeks,
	}
}

// Router builds the chi router with every route mounted
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	s.InitRoute(r)
	return r
}

// InitRoute mounts the middleware stack and the routes on r
func (s *Server) InitRoute(r *chi.Mux) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.Health)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/summary", s.DashboardSummary)
		r.Get("/insights", s.DashboardInsights)
	})

	r.Get("/capacity/insights", s.CapacityInsights)
	r.Get("/planning/board/{material}", s.PlanningBoard)

	r.Route("/upload", func(r chi.Router) {
		r.Get("/history", s.UploadHistory)
		r.Post("/{kind}", s.Upload)
	})

	r.Handle("/metrics", s.metrics.Handler())
}

// observe records request counts and latency under the matched route pattern
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, r.Method, status, time.Since(start))
	})
}
