// Package httpapi exposes the prediction form, JSON API, heatmap, and
// operational endpoints over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evcrashlab/ev-accident-predictor/internal/observability"
	"github.com/evcrashlab/ev-accident-predictor/internal/prediction"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server wires the prediction service to its HTTP surface.
type Server struct {
	httpServer     *http.Server
	svc            *prediction.Service
	ready          ReadinessChecker
	logger         *slog.Logger
	metrics        *observability.Metrics
	predictTimeout time.Duration

	// Heatmap artifact, read once on first request and embedded verbatim.
	heatmapPath string
	heatmapOnce sync.Once
	heatmapHTML []byte
	heatmapErr  error
}

// Options carries the server's dependencies.
type Options struct {
	Addr           string
	Service        *prediction.Service
	Ready          ReadinessChecker
	HeatmapPath    string
	PredictTimeout time.Duration
	Logger         *slog.Logger
	Metrics        *observability.Metrics
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(opts Options) *Server {
	s := &Server{
		svc:            opts.Service,
		ready:          opts.Ready,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		predictTimeout: opts.PredictTimeout,
		heatmapPath:    opts.HeatmapPath,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/predict", s.handlePredictForm).Methods(http.MethodPost)
	router.HandleFunc("/heatmap", s.handleHeatmap).Methods(http.MethodGet)
	router.HandleFunc("/api/predictions", s.handlePredictAPI).Methods(http.MethodPost)
	router.HandleFunc("/api/regions/{zip}", s.handleRegion).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleHeatmap serves the pre-rendered accident heatmap document verbatim.
func (s *Server) handleHeatmap(w http.ResponseWriter, _ *http.Request) {
	s.heatmapOnce.Do(func() {
		s.heatmapHTML, s.heatmapErr = os.ReadFile(s.heatmapPath)
	})

	if s.heatmapErr != nil {
		s.logger.Error("heatmap artifact unavailable", "path", s.heatmapPath, "error", s.heatmapErr)
		s.metrics.HeatmapServes.WithLabelValues("error").Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<p>Error loading heatmap. Please try again later.</p>")) //nolint:errcheck
		return
	}

	s.metrics.HeatmapServes.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.heatmapHTML) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
