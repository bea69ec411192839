package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/leaderboard"
)

type stubSessions struct {
	records   []session.Session
	appendErr error
	pingErr   error
	appended  []session.Submission
	recentHit int
}

func (s *stubSessions) Append(_ context.Context, sub session.Submission) (*session.Session, error) {
	if err := session.ValidateSubmission(sub); err != nil {
		return nil, err
	}
	s.appended = append(s.appended, sub)
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	sess := session.Session{
		ID:        int64(len(s.records) + 1),
		Timestamp: fixedNow,
		Name:      sub.Name,
		Buddy:     sub.Buddy,
		Task:      sub.Task,
	}
	s.records = append(s.records, sess)
	return &sess, nil
}

func (s *stubSessions) ListAll(context.Context) []session.Session {
	return append([]session.Session{}, s.records...)
}

func (s *stubSessions) ListRecent(context.Context) []session.Session {
	s.recentHit++
	return leaderboard.RecentSessions(s.records)
}

func (s *stubSessions) Ping(context.Context) error { return s.pingErr }

// Wednesday.
var fixedNow = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, stub *stubSessions) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(Config{
		Sessions: stub,
		Clock:    clock.Fixed(fixedNow),
	}))
	t.Cleanup(server.Close)
	return server
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHTTPServer_Health(t *testing.T) {
	server := newTestServer(t, &stubSessions{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), `"status":"ok"`)
}

func TestHTTPServer_HealthDegraded(t *testing.T) {
	server := newTestServer(t, &stubSessions{pingErr: session.ErrConnection})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Contains(t, readBody(t, resp), `"status":"degraded"`)
}

func TestHTTPServer_RequestID(t *testing.T) {
	server := newTestServer(t, &stubSessions{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc123")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.Equal(t, "abc123", resp.Header.Get("X-Request-ID"))
}

func TestDashboard_Empty(t *testing.T) {
	server := newTestServer(t, &stubSessions{})

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	require.Contains(t, body, "No sessions recorded this week yet.")
	require.Contains(t, body, "No sessions found in the database.")
	require.Contains(t, body, "Start of Week: 2024-01-08")
	require.Contains(t, body, "Last updated: 2024-01-10 15:00:00")
}

func TestDashboard_RendersLeaderboard(t *testing.T) {
	stub := &stubSessions{records: []session.Session{
		{ID: 1, Timestamp: fixedNow.Add(-time.Hour), Name: "Alice", Buddy: "Bob", Task: "write docs"},
		{ID: 2, Timestamp: fixedNow.Add(-2 * time.Hour), Name: "Alice", Buddy: "Bob", Task: "review"},
		{ID: 3, Timestamp: fixedNow.Add(-3 * time.Hour), Name: "Carol", Buddy: "Dan", Task: "refactor"},
	}}
	server := newTestServer(t, stub)

	resp, err := http.Get(server.URL + "/?saved=1")
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Contains(t, body, "Deep work session recorded! 🎉")
	require.Contains(t, body, "🥇")
	require.Contains(t, body, "Alice with Bob - 2024-01-10 14:00:00")
	require.NotContains(t, body, "No sessions recorded this week yet.")
}

func TestSubmit_Success(t *testing.T) {
	stub := &stubSessions{}
	server := newTestServer(t, stub)

	form := url.Values{"name": {"Alice"}, "buddy": {"Bob"}, "task": {"deep work"}}
	resp, err := noRedirectClient().PostForm(server.URL+"/sessions", form)
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/?saved=1", resp.Header.Get("Location"))
	require.Len(t, stub.appended, 1)
}

func TestSubmit_BlankFieldSkipsStore(t *testing.T) {
	stub := &stubSessions{}
	server := newTestServer(t, stub)

	form := url.Values{"name": {"Alice"}, "buddy": {"   "}, "task": {"deep work"}}
	resp, err := noRedirectClient().PostForm(server.URL+"/sessions", form)
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "Please fill in all fields")
	require.Contains(t, body, `value="Alice"`)
	require.Empty(t, stub.appended)
}

func TestSubmit_WriteFailure(t *testing.T) {
	stub := &stubSessions{appendErr: session.ErrWrite}
	server := newTestServer(t, stub)

	form := url.Values{"name": {"Alice"}, "buddy": {"Bob"}, "task": {"deep work"}}
	resp, err := noRedirectClient().PostForm(server.URL+"/sessions", form)
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, body, "Failed to save session. Please try again.")
}

func TestAPI_Dashboard(t *testing.T) {
	stub := &stubSessions{records: []session.Session{
		{ID: 1, Timestamp: fixedNow, Name: "Alice", Buddy: "Bob", Task: "t"},
	}}
	server := newTestServer(t, stub)

	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got leaderboard.Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 1, got.TotalSessions)
	require.Len(t, got.PerDay, 7)
	require.Equal(t, "Wed", got.PerDay[2].Day)
	require.Equal(t, 1, got.PerDay[2].Count)
	require.Len(t, got.Weekly, 1)
	require.Equal(t, "🥇", got.Weekly[0].Label)
}

func TestAPI_ListSessionsOrder(t *testing.T) {
	stub := &stubSessions{records: []session.Session{
		{ID: 1, Timestamp: fixedNow.Add(-2 * time.Hour), Name: "A"},
		{ID: 2, Timestamp: fixedNow.Add(-time.Hour), Name: "B"},
	}}
	server := newTestServer(t, stub)

	resp, err := http.Get(server.URL + "/api/sessions?order=desc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got listSessionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Sessions, 2)
	require.Equal(t, int64(2), got.Sessions[0].ID)
	require.Equal(t, 1, stub.recentHit)

	resp2, err := http.Get(server.URL + "/api/sessions?order=sideways")
	require.NoError(t, err)
	_ = readBody(t, resp2)
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestAPI_CreateSession(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		appendErr error
		status    int
		stored    int
	}{
		{name: "created", body: `{"name":"Alice","buddy":"Bob","task":"focus"}`, status: http.StatusCreated, stored: 1},
		{name: "blank task", body: `{"name":"Alice","buddy":"Bob","task":" "}`, status: http.StatusBadRequest},
		{name: "bad json", body: `{"name":`, status: http.StatusBadRequest},
		{name: "write failure", body: `{"name":"Alice","buddy":"Bob","task":"focus"}`, appendErr: session.ErrWrite, status: http.StatusInternalServerError, stored: 1},
		{name: "connection failure", body: `{"name":"Alice","buddy":"Bob","task":"focus"}`, appendErr: fmt.Errorf("%w: %w", session.ErrConnection, errors.New("refused")), status: http.StatusServiceUnavailable, stored: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSessions{appendErr: tt.appendErr}
			server := newTestServer(t, stub)

			resp, err := http.Post(server.URL+"/api/sessions", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			_ = readBody(t, resp)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Len(t, stub.appended, tt.stored)
		})
	}
}

func TestHTTPServer_OptionalHandlers(t *testing.T) {
	marker := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "marker")
	})
	server := httptest.NewServer(NewServer(Config{
		Sessions: &stubSessions{},
		Metrics:  marker,
		MCP:      marker,
	}))
	t.Cleanup(server.Close)

	for _, path := range []string{"/metrics", "/mcp"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		require.Equal(t, "marker", readBody(t, resp))
	}

	bare := newTestServer(t, &stubSessions{})
	resp, err := http.Get(bare.URL + "/metrics")
	require.NoError(t, err)
	_ = readBody(t, resp)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
