package leaderboard

import (
	"time"

	"github.com/rpggio/deepwork/internal/domain/session"
)

// DayNames lists histogram buckets in calendar order.
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// StartOfWeek returns the most recent Monday at 00:00:00 in now's location.
func StartOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-weekdayIndex(now), 0, 0, 0, 0, now.Location())
}

// weekdayIndex counts days since Monday (Monday=0 .. Sunday=6).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeeklyFilter returns the records at or after StartOfWeek(now), in input
// order. Records later than now are kept.
func WeeklyFilter(records []session.Session, now time.Time) []session.Session {
	start := StartOfWeek(now)
	weekly := make([]session.Session, 0, len(records))
	for _, rec := range records {
		if !rec.Timestamp.Before(start) {
			weekly = append(weekly, rec)
		}
	}
	return weekly
}
