package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/deskpilot/internal/model"
)

const (
	// LeaderboardLimit bounds full leaderboard views.
	LeaderboardLimit = 50
	// TopPerformersLimit bounds summary panels.
	TopPerformersLimit = 10
)

// Selector picks the score a leaderboard ranks by.
type Selector struct {
	Name  string
	Score func(model.UserMetric) int
}

var (
	BySessionsInWindow = Selector{Name: "window", Score: func(m model.UserMetric) int { return m.SessionsInWindow }}
	BySessionsWeek     = Selector{Name: "weekly", Score: func(m model.UserMetric) int { return m.SessionsWeek }}
	ByStreak           = Selector{Name: "streak", Score: func(m model.UserMetric) int { return m.CurrentStreak }}
	BySessionsToday    = Selector{Name: "today", Score: func(m model.UserMetric) int { return m.SessionsToday }}
)

// ParseSelector resolves a selector by name.
func ParseSelector(name string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "window", "range":
		return BySessionsInWindow, nil
	case "weekly", "week":
		return BySessionsWeek, nil
	case "streak":
		return ByStreak, nil
	case "today":
		return BySessionsToday, nil
	default:
		return Selector{}, fmt.Errorf("unknown leaderboard metric %q (want window, weekly, streak or today)", name)
	}
}

// Rank orders active employees by score, highest first, and keeps at most
// limit entries (limit <= 0 keeps all). Equal scores keep their input order.
func Rank(metrics []model.UserMetric, by Selector, limit int) []model.LeaderboardEntry {
	return rank(metrics, by, limit, false)
}

// TopPerformers is Rank without zero-score entries, for summary panels.
func TopPerformers(metrics []model.UserMetric, by Selector, limit int) []model.LeaderboardEntry {
	return rank(metrics, by, limit, true)
}

func rank(metrics []model.UserMetric, by Selector, limit int, skipZero bool) []model.LeaderboardEntry {
	if by.Score == nil || len(metrics) == 0 {
		return nil
	}
	items := make([]model.LeaderboardEntry, 0, len(metrics))
	for _, m := range metrics {
		if m.Status != model.StatusActive {
			continue
		}
		score := by.Score(m)
		if skipZero && score <= 0 {
			continue
		}
		items = append(items, model.LeaderboardEntry{UserID: m.UserID, Name: m.Name, Score: score})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	for i := range items {
		items[i].Rank = i + 1
	}
	return items
}

// RankOf returns userID's rank in entries, or 0 when absent.
func RankOf(entries []model.LeaderboardEntry, userID string) int {
	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank
		}
	}
	return 0
}

// SortByToday orders metrics by sessions today, most active first, as the
// dashboard table shows them. The input slice is not modified.
func SortByToday(metrics []model.UserMetric) []model.UserMetric {
	out := make([]model.UserMetric, len(metrics))
	copy(out, metrics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SessionsToday > out[j].SessionsToday
	})
	return out
}
