// Package httpapi exposes the wizard over HTTP: spreadsheet read/append,
// directory lookup and session-based navigation for remote front ends.
package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opskit/slipway/internal/wizard"
	"github.com/opskit/slipway/pkg/domain"
	"github.com/opskit/slipway/pkg/ports"
)

// Server holds the wizard engine and its collaborators.
type Server struct {
	engine    *wizard.Engine
	rows      ports.RowStore
	directory ports.Directory
	sessions  ports.StateStore
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
	gatherer  prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHooks registers host-side lifecycle hooks (lookup and append events).
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithRegistry serves /metrics from a dedicated registry instead of the
// process-wide default one.
func WithRegistry(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// withClock overrides the timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewHandler builds the HTTP handler.
func NewHandler(engine *wizard.Engine, rows ports.RowStore, directory ports.Directory, sessions ports.StateStore, opts ...Option) http.Handler {
	s := &Server{
		engine:    engine,
		rows:      rows,
		directory: directory,
		sessions:  sessions,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/api/rows", s.handleReadRows)
	r.Post("/api/rows", s.handleAppendRow)
	r.Get("/api/services", s.handleListServices)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/select", s.handleSelect)
			r.Post("/back", s.handleBack)
			r.Post("/name", s.handleSubmitName)
			r.Post("/choose", s.handleChooseService)
			r.Post("/cancel", s.handleCancel)
		})
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) respond(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, envelope{Success: false, Error: msg})
}

// handleReadRows serves GET /api/rows.
func (s *Server) handleReadRows(w http.ResponseWriter, r *http.Request) {
	records, err := s.rows.ReadAll(r.Context())
	if err != nil {
		s.logger.Error("failed to read rows", "err", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to read spreadsheet")
		return
	}
	s.respond(w, http.StatusOK, envelope{Success: true, Data: records})
}

// handleAppendRow serves POST /api/rows.
func (s *Server) handleAppendRow(w http.ResponseWriter, r *http.Request) {
	var body domain.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.appendRow(w, r, body)
}

// appendRow performs the append and writes the shared response shape.
func (s *Server) appendRow(w http.ResponseWriter, r *http.Request, body domain.UpdateRequest) {
	if body.Timestamp == "" {
		body.Timestamp = s.now().UTC().Format(time.RFC3339)
	}

	err := s.rows.Append(r.Context(), body.ServiceName)
	if s.hooks.OnRowAppend != nil {
		s.hooks.OnRowAppend(r.Context(), &domain.AppendEvent{SubjectName: body.ServiceName, IsError: err != nil})
	}
	if err != nil {
		s.logger.Error("failed to append row", "err", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to write spreadsheet")
		return
	}

	s.respond(w, http.StatusOK, envelope{
		Success: true,
		Message: "Row added successfully",
		Data: map[string]any{
			"serviceName": body.ServiceName,
			"exists":      body.Exists,
			"timestamp":   body.Timestamp,
		},
	})
}

// handleListServices serves GET /api/services.
func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	services, err := s.directory.FetchServices(r.Context(), query)
	if s.hooks.OnLookup != nil {
		s.hooks.OnLookup(r.Context(), &domain.LookupEvent{Query: query, Results: len(services), IsError: err != nil})
	}
	if err != nil {
		s.logger.Error("failed to fetch services", "err", err)
		s.respondError(w, http.StatusBadGateway, "Failed to fetch services from directory")
		return
	}
	s.respond(w, http.StatusOK, envelope{Success: true, Data: services})
}
