// Package testserver starts the full HTTP stack over an in-memory SQLite
// database for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/mcp"
	"github.com/rpggio/deepwork/internal/metrics"
	"github.com/rpggio/deepwork/internal/storage"
	"github.com/rpggio/deepwork/internal/transport"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *storage.DB
	Sessions *session.Service
	Metrics  *metrics.Metrics
}

// New starts a server whose clock reads now. A zero now uses the system
// clock in UTC.
func New(t *testing.T, now time.Time) *TestServer {
	t.Helper()

	db, err := storage.New(storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))

	var clk clock.Clock = clock.System{Location: time.UTC}
	if !now.IsZero() {
		clk = clock.Fixed(now)
	}

	m := metrics.New(prometheus.NewRegistry())
	svc := session.NewService(
		storage.NewSessionRepository(db),
		nil,
		session.WithClock(clk),
		session.WithObserver(m),
	)

	mcpServer := mcp.NewServer(mcp.Config{Sessions: svc, Clock: clk})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Sessions: svc,
		Clock:    clk,
		Metrics:  m.Handler(),
		MCP:      mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Sessions: svc,
		Metrics:  m,
	}
}

// URL joins path onto the server address.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
