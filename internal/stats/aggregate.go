package stats

import (
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// AggregateInput is an immutable snapshot for one company.
//
// WindowLogs must cover the report window. HistoryLogs must cover the week
// ending on asOf; it is never clipped to the window. Streaks come from
// Histories when set, and from HistoryLogs otherwise.
type AggregateInput struct {
	CompanyID   string
	Roster      []model.User
	WindowLogs  []model.SessionLog
	HistoryLogs []model.SessionLog
	// Histories maps each employee to their own log history.
	Histories map[string][]model.SessionLog
	Window    Window
	AsOf      time.Time
	Location  *time.Location
}

// Aggregation is the derived view of a company for a window.
type Aggregation struct {
	Metrics model.CompanyMetrics
	Users   []model.UserMetric
	Trend   []model.DailyCount
}

type userCounts struct {
	today  int
	week   int
	window int
	dates  []model.Date
}

// Aggregate derives company metrics, per-user metrics and the zero-filled
// trend. Roster entries and logs of other companies are ignored.
func Aggregate(in AggregateInput) Aggregation {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	asOf := model.DateOf(in.AsOf, loc)
	week := TrailingWindow(asOf, 7)

	roster := employeesOf(in.Roster, in.CompanyID)
	counts := make(map[string]*userCounts, len(roster))
	for _, u := range roster {
		counts[u.ID] = &userCounts{}
	}

	var out Aggregation
	out.Metrics.TotalEmployees = len(roster)

	trendIdx := make(map[model.Date]int, len(in.Window.Days))
	out.Trend = make([]model.DailyCount, len(in.Window.Days))
	for i, d := range in.Window.Days {
		out.Trend[i] = model.DailyCount{Date: d}
		trendIdx[d] = i
	}

	for _, l := range in.WindowLogs {
		if l.CompanyID != in.CompanyID || !in.Window.Contains(l.Timestamp, loc) {
			continue
		}
		out.Metrics.SessionsInWindow++
		if i, ok := trendIdx[model.DateOf(l.Timestamp, loc)]; ok {
			out.Trend[i].Count++
		}
		if c, ok := counts[l.UserID]; ok {
			c.window++
		}
	}

	for _, l := range in.HistoryLogs {
		if l.CompanyID != in.CompanyID {
			continue
		}
		day := model.DateOf(l.Timestamp, loc)
		if day == asOf {
			out.Metrics.SessionsToday++
		}
		c, ok := counts[l.UserID]
		if !ok {
			continue
		}
		if in.Histories == nil {
			c.dates = append(c.dates, day)
		}
		if day == asOf {
			c.today++
		}
		if week.Contains(l.Timestamp, loc) {
			c.week++
		}
	}

	if in.Histories != nil {
		for id, c := range counts {
			c.dates = ActivityDates(in.Histories[id], id, loc)
		}
	}

	activeToday := 0
	out.Users = make([]model.UserMetric, 0, len(roster))
	for _, u := range roster {
		c := counts[u.ID]
		if u.Status == model.StatusActive {
			out.Metrics.ActiveEmployees++
			if c.today > 0 {
				activeToday++
			}
			if c.window > 0 {
				out.Metrics.ActiveInWindow++
			}
		}
		out.Users = append(out.Users, model.UserMetric{
			UserID:           u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Status:           u.Status,
			SessionsToday:    c.today,
			SessionsWeek:     c.week,
			SessionsInWindow: c.window,
			CurrentStreak:    ComputeStreak(c.dates, asOf),
		})
	}
	out.Metrics.ParticipationRate = Percent(activeToday, out.Metrics.ActiveEmployees)
	out.Metrics.WindowParticipationRate = Percent(out.Metrics.ActiveInWindow, out.Metrics.ActiveEmployees)
	return out
}

func employeesOf(roster []model.User, companyID string) []model.User {
	out := make([]model.User, 0, len(roster))
	seen := make(map[string]struct{}, len(roster))
	for _, u := range roster {
		if u.CompanyID != companyID {
			continue
		}
		if u.Role != "" && u.Role != model.RoleEmployee {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
