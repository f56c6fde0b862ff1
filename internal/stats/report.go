package stats

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// Source is the read side of the event store.
type Source interface {
	FetchCompany(ctx context.Context, companyID string) (model.Company, error)
	FetchRoster(ctx context.Context, companyID string) ([]model.User, error)
	FetchLogs(ctx context.Context, companyID string, start, end time.Time) ([]model.SessionLog, error)
	FetchAllLogsForUser(ctx context.Context, userID string) ([]model.SessionLog, error)
	ListExercises(ctx context.Context) ([]model.Exercise, error)
}

// ReportRequest selects the company and range for a report.
type ReportRequest struct {
	CompanyID   string
	Range       RangeKind
	CustomStart *model.Date
	CustomEnd   *model.Date
	Now         time.Time
	// Location is used when the company has no timezone of its own.
	Location *time.Location
	// HistoryDays bounds the lookback used for streaks; 0 reads all history.
	HistoryDays int
}

// Report contains precomputed data for rendering.
type Report struct {
	Company model.Company
	// Roster is the company's employees in roster order.
	Roster   []model.User
	Window   Window
	AsOf     time.Time
	Location *time.Location
	Aggregation
}

// Leaderboard ranks the report's employees by the given selector.
func (r Report) Leaderboard(by Selector, limit int) []model.LeaderboardEntry {
	return Rank(r.Users, by, limit)
}

// TopPerformers ranks by sessions in the window, omitting zero scores.
func (r Report) TopPerformers(limit int) []model.LeaderboardEntry {
	return TopPerformers(r.Users, BySessionsInWindow, limit)
}

// BuildReport loads the roster with each employee's history, the window
// logs and the last week's logs in parallel, and aggregates them once all
// have arrived. Any fetch failure aborts the report.
func BuildReport(ctx context.Context, src Source, req ReportRequest, observers ...Observer) (Report, error) {
	obs := observerOrNoop(observers)
	started := time.Now()
	report, err := buildReport(ctx, src, req)
	obs.ObserveReport(ctx, ReportEvent{
		Name:      "report_built",
		CompanyID: req.CompanyID,
		Range:     req.Range,
		Users:     len(report.Users),
		Duration:  time.Since(started),
		Err:       err,
	})
	return report, err
}

func buildReport(ctx context.Context, src Source, req ReportRequest) (Report, error) {
	if req.CompanyID == "" {
		return Report{}, fmt.Errorf("company id is required")
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	company, err := src.FetchCompany(ctx, req.CompanyID)
	if err != nil {
		return Report{}, fmt.Errorf("fetching company: %w", err)
	}
	loc := CompanyLocation(company, req.Location)

	window, err := ResolveWindow(req.Range, req.CustomStart, req.CustomEnd, now, loc)
	if err != nil {
		return Report{}, err
	}
	asOf := model.DateOf(now, loc)
	historyStart := HistoryStart(asOf, req.HistoryDays, loc)
	week := TrailingWindow(asOf, 7)

	var (
		roster     []model.User
		histories  map[string][]model.SessionLog
		windowLogs []model.SessionLog
		recentLogs []model.SessionLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = src.FetchRoster(gctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("fetching roster: %w", err)
		}
		histories, err = fetchHistories(gctx, src, roster, historyStart, asOf.End(loc))
		return err
	})
	g.Go(func() error {
		var err error
		windowLogs, err = src.FetchLogs(gctx, req.CompanyID, window.StartInstant(loc), window.EndInstant(loc))
		if err != nil {
			return fmt.Errorf("fetching window logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recentLogs, err = src.FetchLogs(gctx, req.CompanyID, week.StartInstant(loc), week.EndInstant(loc))
		if err != nil {
			return fmt.Errorf("fetching recent logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	agg := Aggregate(AggregateInput{
		CompanyID:   req.CompanyID,
		Roster:      roster,
		WindowLogs:  windowLogs,
		HistoryLogs: recentLogs,
		Histories:   histories,
		Window:      window,
		AsOf:        now,
		Location:    loc,
	})
	return Report{
		Company:     company,
		Roster:      roster,
		Window:      window,
		AsOf:        now,
		Location:    loc,
		Aggregation: agg,
	}, nil
}

// CompanyLocation returns the company's timezone, falling back to def and
// then to the local zone.
func CompanyLocation(company model.Company, def *time.Location) *time.Location {
	if company.Timezone != "" {
		if loc, err := time.LoadLocation(company.Timezone); err == nil {
			return loc
		}
	}
	if def != nil {
		return def
	}
	return time.Local
}

// HistoryStart is the lower bound of the streak lookback. A non-positive
// days value means all history (the zero time).
func HistoryStart(asOf model.Date, days int, loc *time.Location) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return asOf.AddDays(-(days - 1)).Start(loc)
}

// historyFetchLimit bounds concurrent per-employee history reads.
const historyFetchLimit = 4

func fetchHistories(ctx context.Context, src Source, roster []model.User, start, end time.Time) (map[string][]model.SessionLog, error) {
	results := make([][]model.SessionLog, len(roster))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFetchLimit)
	for i, u := range roster {
		g.Go(func() error {
			logs, err := src.FetchAllLogsForUser(gctx, u.ID)
			if err != nil {
				return fmt.Errorf("fetching history of %s: %w", u.ID, err)
			}
			results[i] = clipLogs(logs, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string][]model.SessionLog, len(roster))
	for i, u := range roster {
		out[u.ID] = results[i]
	}
	return out, nil
}

// clipLogs keeps logs with start <= timestamp <= end. A zero start is
// unbounded.
func clipLogs(logs []model.SessionLog, start, end time.Time) []model.SessionLog {
	out := make([]model.SessionLog, 0, len(logs))
	for _, l := range logs {
		if !start.IsZero() && l.Timestamp.Before(start) {
			continue
		}
		if l.Timestamp.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out
}
