package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/leaderboard"
)

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.buildDashboard(r))
}

type listSessionsResponse struct {
	Sessions []session.Session `json:"sessions"`
}

func (s *Server) handleAPIListSessions(w http.ResponseWriter, r *http.Request) {
	var sessions []session.Session
	switch r.URL.Query().Get("order") {
	case "", "asc":
		sessions = s.sessions.ListAll(r.Context())
	case "desc":
		sessions = s.sessions.ListRecent(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}
	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: sessions})
}

type createSessionResponse struct {
	Session   *session.Session      `json:"session"`
	Dashboard leaderboard.Dashboard `json:"dashboard"`
}

func (s *Server) handleAPICreateSession(w http.ResponseWriter, r *http.Request) {
	var sub session.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := session.ValidateSubmission(sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.Append(r.Context(), sub)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{
		Session:   sess,
		Dashboard: s.buildDashboard(r),
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrConnection):
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "failed to save session")
	}
}
