package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
)

// SessionService defines session operations needed by MCP.
type SessionService interface {
	Append(ctx context.Context, sub session.Submission) (*session.Session, error)
	ListAll(ctx context.Context) []session.Session
	ListRecent(ctx context.Context) []session.Session
}

// Config contains server configuration.
type Config struct {
	Sessions SessionService
	Clock    clock.Clock
	Logger   *slog.Logger
	Version  string
}

const serverInstructions = `deepwork tracks deep work sessions: who worked, with which accountability buddy, on what task.

- record_session stores one session stamped with the server clock. name, buddy and task must be non-blank.
- get_dashboard returns this week's leaderboard (weeks start Monday 00:00), the per-day histogram, all-time counts and recent sessions.
- list_sessions returns every stored session; pass order "desc" for newest first.
`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "deepwork",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Sessions, cfg.Clock)

	return server
}
