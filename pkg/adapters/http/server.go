// Package http exposes the execution service over HTTP and provides the
// matching client used by remote terminals.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/webterm/internal/logging"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/executor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the server-side engine behind the handlers.
type Service interface {
	Execute(ctx context.Context, req domain.CommandRequest) executor.Response
	History(ctx context.Context, sessionID string, limit int) ([]domain.HistoryEntry, error)
}

// Server holds the handler dependencies.
type Server struct {
	svc        Service
	version    string
	apiVersion string
	docs       bool
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /api/version and /.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithDocs mounts /openapi.yaml and /docs.
func WithDocs(enabled bool) Option {
	return func(s *Server) {
		s.docs = enabled
	}
}

// WithGatherer selects the registry exposed on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc Service, opts ...Option) http.Handler {
	s := &Server{
		svc:        svc,
		version:    "dev",
		apiVersion: apiVersion(),
		gatherer:   prometheus.DefaultGatherer,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.GetRoot)
	r.Get("/health", s.GetHealth)
	r.Post("/api/execute", s.Execute)
	r.Get("/api/history", s.GetHistory)
	r.Get("/api/version", s.GetVersion)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	if s.docs {
		r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/yaml")
			_, _ = w.Write(openapiDoc)
		})
		r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(swaggerHTML))
		})
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// httpStatus maps a service outcome to its response code.
func httpStatus(st executor.Status) int {
	switch st {
	case executor.StatusInvalid:
		return http.StatusBadRequest
	case executor.StatusUpstream:
		return http.StatusServiceUnavailable
	case executor.StatusInternal:
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Execute handles POST /api/execute.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	var body domain.CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&body); err != nil {
		s.logger.Warn("Execute: Invalid request body", "err", err)
		s.writeJSON(w, http.StatusBadRequest, domain.Failure("Invalid request body"))
		return
	}

	resp := s.svc.Execute(r.Context(), body)
	s.writeJSON(w, httpStatus(resp.Status), resp.Result)
}

// GetHistory handles GET /api/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	var sessionID string
	if err := runtime.BindQueryParameter("form", true, true, "session_id", r.URL.Query(), &sessionID); err != nil || sessionID == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody("session_id is required"))
		return
	}

	limit := domain.DefaultHistoryLimit
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("limit must be an integer"))
		return
	}
	if limit < 1 {
		s.writeJSON(w, http.StatusBadRequest, errorBody("limit must be positive"))
		return
	}

	entries, err := s.svc.History(r.Context(), sessionID, limit)
	if err != nil {
		s.logger.Error("History lookup failed", "session_id", sessionID, "err", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody("history unavailable"))
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, historyResponse{History: entries})
}

// GetVersion handles GET /api/version.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, versionResponse{Version: s.version, APIVersion: s.apiVersion})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GetRoot handles GET /.
func (s *Server) GetRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Terminal API", "version": s.version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

type historyResponse struct {
	History []domain.HistoryEntry `json:"history"`
}

type versionResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errorResponse {
	return errorResponse{Error: msg}
}
