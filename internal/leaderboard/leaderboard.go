// Package leaderboard turns raw visit sessions from the attendance
// backend into a ranked list of members. It is a pure transformation:
// fetching the sessions and rendering the ranking belong to the caller.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/rs/zerolog/log"
)

// The backend force-signs-out stragglers at exactly 4:00 AM every
// night. Those signouts are maintenance noise, not real departures
const autoSignoutHour = 4
const autoSignoutMinute = 0

// Sessions longer than this are treated as a data error
// (someone forgot to sign out and the record slipped through)
const maxSessionHours = 24.0

// Entry is one ranked member of the leaderboard
type Entry struct {
	Name       string  `json:"name"`
	Visits     int     `json:"visits"`
	TotalHours float64 `json:"total_hours"`
	AvgHours   float64 `json:"avg_hours"`
}

type memberStat struct {
	visits     int
	totalHours float64
}

// Timestamp layouts the backend has been seen producing: RFC3339 with
// a zone, plus the zoneless forms python's datetime.isoformat emits
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp string as the backend
// writes them
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse timestamp %q", value)
}

// Compute aggregates visit sessions into a ranked leaderboard of at
// most topN entries. Sessions with unparsable timestamps are skipped.
// Sessions signed out at exactly 4:00 AM wall clock are dropped as
// nightly auto-signouts, and sessions longer than 24 hours are dropped
// as data errors. Ranking is by visit count, ties broken by total
// hours, both descending
func Compute(sessions []officeapi.VisitSession, topN int) []Entry {

	stats := map[string]*memberStat{}
	for _, session := range sessions {

		signin, err := ParseTimestamp(session.SigninTime)
		if err != nil {
			log.Debug().Msg(fmt.Sprintf("Skipping visit of %s: %s", session.Name, err))
			continue
		}
		signout, err := ParseTimestamp(session.SignoutTime)
		if err != nil {
			log.Debug().Msg(fmt.Sprintf("Skipping visit of %s: %s", session.Name, err))
			continue
		}

		// Nightly auto-signout. Seconds are deliberately ignored
		if signout.Hour() == autoSignoutHour && signout.Minute() == autoSignoutMinute {
			log.Debug().Msg(fmt.Sprintf("Skipping 4 AM auto-signout of %s", session.Name))
			continue
		}

		durationHours := signout.Sub(signin).Hours()
		if durationHours > maxSessionHours {
			log.Debug().Msg(fmt.Sprintf("Skipping %.1f hour visit of %s", durationHours, session.Name))
			continue
		}

		stat, ok := stats[session.Name]
		if !ok {
			stat = &memberStat{}
			stats[session.Name] = stat
		}
		stat.visits++
		stat.totalHours += durationHours
	}

	entries := make([]Entry, 0, len(stats))
	for name, stat := range stats {
		entries = append(entries, Entry{
			Name:       name,
			Visits:     stat.visits,
			TotalHours: stat.totalHours,
			AvgHours:   stat.totalHours / float64(stat.visits),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Visits != entries[j].Visits {
			return entries[i].Visits > entries[j].Visits
		}
		if entries[i].TotalHours != entries[j].TotalHours {
			return entries[i].TotalHours > entries[j].TotalHours
		}
		return entries[i].Name < entries[j].Name
	})

	if topN < 0 {
		topN = 0
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
