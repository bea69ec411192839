package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
)

// SessionService defines the session operations the HTTP layer needs.
type SessionService interface {
	Append(ctx context.Context, sub session.Submission) (*session.Session, error)
	ListAll(ctx context.Context) []session.Session
	ListRecent(ctx context.Context) []session.Session
	Ping(ctx context.Context) error
}

// Config wires the HTTP server.
type Config struct {
	Sessions SessionService
	Clock    clock.Clock
	Logger   *slog.Logger
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// MCP serves /mcp when set.
	MCP http.Handler
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	sessions SessionService
	clock    clock.Clock
	logger   *slog.Logger
	pages    *pageRenderer
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System{}
	}

	srv := &Server{
		sessions: cfg.Sessions,
		clock:    clk,
		logger:   logger,
		pages:    newPageRenderer(),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/", srv.handleDashboard)
	r.Post("/sessions", srv.handleSubmit)
	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", srv.handleAPIDashboard)
		r.Get("/sessions", srv.handleAPIListSessions)
		r.Post("/sessions", srv.handleAPICreateSession)
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", DB: "error: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", DB: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}
