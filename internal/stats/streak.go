package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// ComputeStreak returns the number of consecutive active days ending on
// asOf or the day before. Activity older than yesterday means no streak.
// Duplicate dates count once and dates after asOf are ignored.
func ComputeStreak(dates []model.Date, asOf model.Date) int {
	distinct := distinctDescending(dates)
	for len(distinct) > 0 && distinct[0].After(asOf) {
		distinct = distinct[1:]
	}
	if len(distinct) == 0 {
		return 0
	}
	latest := distinct[0]
	if latest != asOf && latest != asOf.AddDays(-1) {
		return 0
	}
	streak := 1
	expected := latest.AddDays(-1)
	for _, d := range distinct[1:] {
		if d != expected {
			break
		}
		streak++
		expected = expected.AddDays(-1)
	}
	return streak
}

// ActivityDates collects the calendar dates on which userID logged a session.
func ActivityDates(logs []model.SessionLog, userID string, loc *time.Location) []model.Date {
	var dates []model.Date
	for _, l := range logs {
		if l.UserID != userID {
			continue
		}
		dates = append(dates, model.DateOf(l.Timestamp, loc))
	}
	return dates
}

func distinctDescending(dates []model.Date) []model.Date {
	seen := make(map[model.Date]struct{}, len(dates))
	out := make([]model.Date, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].After(out[j])
	})
	return out
}
