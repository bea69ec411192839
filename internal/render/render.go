// Package render draws dashboards and session lists for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/leaderboard"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	maxBarWidth     = 30

	noWeeklySessions = "No sessions recorded this week yet."
	noSessions       = "No sessions found in the database."
)

// Dashboard writes the leaderboard view of d to w.
func Dashboard(w io.Writer, d leaderboard.Dashboard) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🧠 Deep Work Tracker"))
	b.WriteString("\n")
	b.WriteString(captionStyle.Render("Last updated: " + d.GeneratedAt.Format(timestampLayout)))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("🏆 This Week's Leaderboard"))
	b.WriteString("\n")
	b.WriteString(captionStyle.Render("Start of Week: " + d.WeekStart.Format("2006-01-02")))
	b.WriteString("\n")
	if len(d.Weekly) == 0 {
		b.WriteString(infoStyle.Render(noWeeklySessions))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(d.Weekly))
		for _, e := range d.Weekly {
			rows = append(rows, []string{e.Label, e.Name, strconv.Itoa(e.Count)})
		}
		b.WriteString(newTable([]string{"Rank", "Name", "Sessions"}, rows))
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Sessions per day"))
		b.WriteString("\n")
		b.WriteString(Histogram(d.PerDay))
	}

	b.WriteString(headingStyle.Render("📊 All-Time Stats"))
	b.WriteString("\n")
	if len(d.AllTime) == 0 {
		b.WriteString(infoStyle.Render(noSessions))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(d.AllTime))
		for _, s := range d.AllTime {
			rows = append(rows, []string{s.Name, strconv.Itoa(s.Count)})
		}
		b.WriteString(newTable([]string{"Name", "Total Sessions"}, rows))
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Recent Sessions"))
	b.WriteString("\n")
	b.WriteString(recentList(d.Recent))

	_, err := io.WriteString(w, b.String())
	return err
}

// Sessions writes every session as a table, in the order given.
func Sessions(w io.Writer, sessions []session.Session) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, infoStyle.Render(noSessions))
		return err
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Timestamp.Format(timestampLayout),
			s.Name,
			s.Buddy,
			s.Task,
		})
	}
	_, err := fmt.Fprintln(w, newTable([]string{"ID", "Timestamp", "Name", "Buddy", "Task"}, rows))
	return err
}

// Histogram draws one horizontal bar per day, scaled to the busiest day.
func Histogram(days []leaderboard.DayCount) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}
	var b strings.Builder
	for _, d := range days {
		width := 0
		if peak > 0 {
			width = d.Count * maxBarWidth / peak
		}
		if d.Count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%-3s %s %d\n", d.Day, barStyle.Render(strings.Repeat("█", width)), d.Count)
	}
	return b.String()
}

// Error formats a failure line for terminal output.
func Error(msg string) string {
	return errorStyle.Render(msg)
}

func recentList(sessions []session.Session) string {
	if len(sessions) == 0 {
		return infoStyle.Render(noSessions) + "\n"
	}
	var b strings.Builder
	for _, s := range sessions {
		fmt.Fprintf(&b, "%s with %s - %s\n", s.Name, s.Buddy, s.Timestamp.Format(timestampLayout))
		if s.Task != "" {
			b.WriteString(captionStyle.Render("  " + s.Task))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return t.String()
}
