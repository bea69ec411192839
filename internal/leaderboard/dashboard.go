package leaderboard

import (
	"time"

	"github.com/rpggio/deepwork/internal/domain/session"
)

// Dashboard bundles every aggregation computed for one request.
type Dashboard struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	WeekStart      time.Time         `json:"week_start"`
	TotalSessions  int               `json:"total_sessions"`
	WeeklySessions int               `json:"weekly_sessions"`
	Weekly         []Entry           `json:"weekly"`
	PerDay         []DayCount        `json:"per_day"`
	AllTime        []Standing        `json:"all_time"`
	Recent         []session.Session `json:"recent"`
}

// Build recomputes the dashboard from scratch.
func Build(records []session.Session, now time.Time) Dashboard {
	return Dashboard{
		GeneratedAt:    now,
		WeekStart:      StartOfWeek(now),
		TotalSessions:  len(records),
		WeeklySessions: len(WeeklyFilter(records, now)),
		Weekly:         WeeklyLeaderboard(records, now),
		PerDay:         SessionsPerDay(records, now),
		AllTime:        AllTimeLeaderboard(records),
		Recent:         RecentSessions(records),
	}
}
