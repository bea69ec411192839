package leaderboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/rpggio/deepwork/internal/domain/session"
)

// Entry is one row of the weekly leaderboard.
type Entry struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Standing is one row of the all-time leaderboard.
type Standing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is one histogram bucket.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// RankLabel decorates a 1-indexed position.
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%dth", rank)
	}
}

// WeeklyLeaderboard counts this week's sessions per name, most first.
func WeeklyLeaderboard(records []session.Session, now time.Time) []Entry {
	standings := countByName(WeeklyFilter(records, now))
	entries := make([]Entry, len(standings))
	for i, st := range standings {
		entries[i] = Entry{
			Rank:  i + 1,
			Label: RankLabel(i + 1),
			Name:  st.Name,
			Count: st.Count,
		}
	}
	return entries
}

// AllTimeLeaderboard counts every session per name, most first.
func AllTimeLeaderboard(records []session.Session) []Standing {
	return countByName(records)
}

// SessionsPerDay buckets this week's sessions by weekday, always Mon..Sun.
func SessionsPerDay(records []session.Session, now time.Time) []DayCount {
	var counts [7]int
	loc := now.Location()
	for _, rec := range WeeklyFilter(records, now) {
		counts[weekdayIndex(rec.Timestamp.In(loc))]++
	}
	days := make([]DayCount, len(DayNames))
	for i, name := range DayNames {
		days[i] = DayCount{Day: name, Count: counts[i]}
	}
	return days
}

// RecentSessions returns a copy ordered newest first. Equal timestamps keep
// their input order.
func RecentSessions(records []session.Session) []session.Session {
	recent := slices.Clone(records)
	if recent == nil {
		recent = []session.Session{}
	}
	slices.SortStableFunc(recent, func(a, b session.Session) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return recent
}

// countByName groups by name in first-seen order, then stable-sorts by
// count descending so ties keep that order.
func countByName(records []session.Session) []Standing {
	index := make(map[string]int, len(records))
	standings := make([]Standing, 0)
	for _, rec := range records {
		i, ok := index[rec.Name]
		if !ok {
			i = len(standings)
			index[rec.Name] = i
			standings = append(standings, Standing{Name: rec.Name})
		}
		standings[i].Count++
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		return b.Count - a.Count
	})
	return standings
}
