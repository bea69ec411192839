package transport

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/leaderboard"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	noticeSaved       = "Deep work session recorded! 🎉"
	noticeBlankFields = "Please fill in all fields"
	noticeSaveFailed  = "Failed to save session. Please try again."
)

type pageRenderer struct {
	dashboard *template.Template
}

func newPageRenderer() *pageRenderer {
	funcs := template.FuncMap{
		"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		"day":   func(t time.Time) string { return t.Format("2006-01-02") },
		"barPct": func(count int, days []leaderboard.DayCount) int {
			peak := 0
			for _, d := range days {
				peak = max(peak, d.Count)
			}
			if peak == 0 {
				return 0
			}
			return count * 100 / peak
		},
	}
	return &pageRenderer{
		dashboard: template.Must(template.New("dashboard.html").Funcs(funcs).ParseFS(templateFS, "templates/dashboard.html")),
	}
}

type dashboardPage struct {
	leaderboard.Dashboard
	Notice string
	Failed bool
	Form   session.Submission
}

func (p *pageRenderer) render(w http.ResponseWriter, status int, page dashboardPage) error {
	var buf bytes.Buffer
	if err := p.dashboard.Execute(&buf, page); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{Dashboard: s.buildDashboard(r)}
	if r.URL.Query().Get("saved") == "1" {
		page.Notice = noticeSaved
	}
	s.writePage(w, r, http.StatusOK, page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	sub := session.Submission{
		Name:  r.PostFormValue("name"),
		Buddy: r.PostFormValue("buddy"),
		Task:  r.PostFormValue("task"),
	}

	if err := session.ValidateSubmission(sub); err != nil {
		s.writePage(w, r, http.StatusBadRequest, dashboardPage{
			Dashboard: s.buildDashboard(r),
			Notice:    noticeBlankFields,
			Failed:    true,
			Form:      sub,
		})
		return
	}

	if _, err := s.sessions.Append(r.Context(), sub); err != nil {
		status := http.StatusInternalServerError
		notice := noticeSaveFailed
		if errors.Is(err, session.ErrInvalidInput) {
			status = http.StatusBadRequest
			notice = noticeBlankFields
		}
		s.writePage(w, r, status, dashboardPage{
			Dashboard: s.buildDashboard(r),
			Notice:    notice,
			Failed:    true,
			Form:      sub,
		})
		return
	}

	http.Redirect(w, r, "/?saved=1", http.StatusSeeOther)
}

func (s *Server) buildDashboard(r *http.Request) leaderboard.Dashboard {
	return leaderboard.Build(s.sessions.ListAll(r.Context()), s.clock.Now())
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, page dashboardPage) {
	if err := s.pages.render(w, status, page); err != nil {
		s.logger.Error("render dashboard failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
