package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// DetailTrendDays is the length of the trend shown on an employee's page.
const DetailTrendDays = 30

const unknownExercise = "Unknown Exercise"

// ExerciseCount is how often one exercise was done, and when last.
type ExerciseCount struct {
	Name   string
	Count  int
	LastAt time.Time
}

// Detail is the full-history view of a single employee.
type Detail struct {
	User          model.User
	TotalSessions int
	CurrentStreak int
	Trend         []model.DailyCount
	Breakdown     []ExerciseCount
	Location      *time.Location
	// WeeklyRank is the position on the weekly leaderboard out of Ranked
	// employees; 0 when unranked.
	WeeklyRank int
	Ranked     int
}

// NotInCompanyError reports a user looked up under the wrong company.
type NotInCompanyError struct {
	UserID    string
	CompanyID string
}

func (e *NotInCompanyError) Error() string {
	return fmt.Sprintf("employee %s not found in company %s", e.UserID, e.CompanyID)
}

func (e *NotInCompanyError) Unwrap() error {
	return ErrEmployeeNotFound
}

// UserSource is the subset of the store needed for employee details.
type UserSource interface {
	FetchUser(ctx context.Context, userID string) (model.User, error)
	FetchAllLogsForUser(ctx context.Context, userID string) ([]model.SessionLog, error)
	ListExercises(ctx context.Context) ([]model.Exercise, error)
}

// EmployeeDetail loads one employee's history and derives their stats.
// The employee must belong to companyID.
func EmployeeDetail(ctx context.Context, src UserSource, companyID, userID string, now time.Time, loc *time.Location) (Detail, error) {
	user, err := src.FetchUser(ctx, userID)
	if err != nil {
		return Detail{}, fmt.Errorf("fetching employee: %w", err)
	}
	if user.CompanyID != companyID {
		return Detail{}, &NotInCompanyError{UserID: userID, CompanyID: companyID}
	}
	logs, err := src.FetchAllLogsForUser(ctx, userID)
	if err != nil {
		return Detail{}, fmt.Errorf("fetching employee logs: %w", err)
	}
	exercises, err := src.ListExercises(ctx)
	if err != nil {
		return Detail{}, fmt.Errorf("fetching exercises: %w", err)
	}
	return BuildDetail(user, logs, exercises, now, loc), nil
}

// BuildDetail derives an employee's stats from their full log history.
func BuildDetail(user model.User, logs []model.SessionLog, exercises []model.Exercise, now time.Time, loc *time.Location) Detail {
	if loc == nil {
		loc = time.UTC
	}
	asOf := model.DateOf(now, loc)
	window := TrailingWindow(asOf, DetailTrendDays)

	own := make([]model.SessionLog, 0, len(logs))
	for _, l := range logs {
		if l.UserID == user.ID {
			own = append(own, l)
		}
	}

	trend := make([]model.DailyCount, len(window.Days))
	idx := make(map[model.Date]int, len(window.Days))
	for i, d := range window.Days {
		trend[i] = model.DailyCount{Date: d}
		idx[d] = i
	}
	for _, l := range own {
		if i, ok := idx[model.DateOf(l.Timestamp, loc)]; ok {
			trend[i].Count++
		}
	}

	return Detail{
		User:          user,
		TotalSessions: len(own),
		CurrentStreak: ComputeStreak(ActivityDates(own, user.ID, loc), asOf),
		Trend:         trend,
		Breakdown:     exerciseBreakdown(own, exercises),
		Location:      loc,
	}
}

func exerciseBreakdown(logs []model.SessionLog, exercises []model.Exercise) []ExerciseCount {
	names := make(map[string]string, len(exercises))
	for _, ex := range exercises {
		names[ex.ID] = ex.Name
	}
	byName := map[string]*ExerciseCount{}
	var order []string
	for _, l := range logs {
		name, ok := names[l.ExerciseID]
		if !ok || name == "" {
			name = unknownExercise
		}
		entry, ok := byName[name]
		if !ok {
			entry = &ExerciseCount{Name: name}
			byName[name] = entry
			order = append(order, name)
		}
		entry.Count++
		if l.Timestamp.After(entry.LastAt) {
			entry.LastAt = l.Timestamp
		}
	}
	out := make([]ExerciseCount, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].LastAt.After(out[j].LastAt)
		}
		return out[i].Count > out[j].Count
	})
	return out
}
