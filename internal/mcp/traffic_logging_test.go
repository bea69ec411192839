package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFormatPayload(t *testing.T) {
	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `{"order":"desc"}`, formatPayload(ListSessionsParams{Order: "desc"}))
	require.Equal(t, "chan int", formatPayload(make(chan int)))
}

func TestTrafficLogging_DebugOnly(t *testing.T) {
	var buf lockedBuffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := NewServer(Config{Sessions: &sessionStub{}, Clock: clock.Fixed(testNow), Logger: logger})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	_, err = cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_sessions", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "mcp traffic")
	require.Contains(t, buf.String(), "tools/call")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "INVALID_INPUT", MapError(session.ErrInvalidInput).Code)
	require.Equal(t, "INTERNAL", MapError(context.Canceled).Code)
}
