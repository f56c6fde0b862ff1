package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/testutil"
)

func aggregateFixture(t *testing.T, kind RangeKind) (model.Company, Window, time.Time) {
	t.Helper()
	company := testutil.NewTestCompany("Acme")
	now := testutil.Fixed
	w, err := ResolveWindow(kind, nil, nil, now, time.UTC)
	require.NoError(t, err)
	return company, w, now
}

func TestAggregate_EmptyLogs(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeLast7)
	var roster []model.User
	for i := 0; i < 5; i++ {
		roster = append(roster, testutil.NewTestUser(company.ID, fmt.Sprintf("User %d", i)))
	}

	agg := Aggregate(AggregateInput{CompanyID: company.ID, Roster: roster, Window: w, AsOf: now, Location: time.UTC})

	assert.Equal(t, 5, agg.Metrics.TotalEmployees)
	assert.Equal(t, 5, agg.Metrics.ActiveEmployees)
	assert.Zero(t, agg.Metrics.SessionsToday)
	assert.Zero(t, agg.Metrics.ParticipationRate)
	assert.Zero(t, agg.Metrics.SessionsInWindow)
	assert.Zero(t, agg.Metrics.WindowParticipationRate)
	require.Len(t, agg.Trend, 7)
	for _, dc := range agg.Trend {
		assert.Zero(t, dc.Count)
	}
	require.Len(t, agg.Users, 5)
	for _, u := range agg.Users {
		assert.Zero(t, u.SessionsToday)
		assert.Zero(t, u.SessionsWeek)
		assert.Zero(t, u.CurrentStreak)
	}
}

func TestAggregate_ParticipationRate(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeToday)
	var roster []model.User
	var logs []model.SessionLog
	for i := 0; i < 10; i++ {
		u := testutil.NewTestUser(company.ID, fmt.Sprintf("User %d", i))
		roster = append(roster, u)
		if i < 3 {
			// Two sessions for the first user must still count as one participant.
			logs = append(logs, testutil.NewTestLog(u, now))
			if i == 0 {
				logs = append(logs, testutil.NewTestLog(u, now.Add(-time.Hour)))
			}
		}
	}

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      roster,
		WindowLogs:  logs,
		HistoryLogs: logs,
		Window:      w,
		AsOf:        now,
		Location:    time.UTC,
	})

	assert.Equal(t, 4, agg.Metrics.SessionsToday)
	assert.Equal(t, 30, agg.Metrics.ParticipationRate)
	assert.Equal(t, 3, agg.Metrics.ActiveInWindow)
	assert.Equal(t, 30, agg.Metrics.WindowParticipationRate)
}

func TestAggregate_NonActiveUsersExcludedFromParticipation(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeToday)
	active := testutil.NewTestUser(company.ID, "Active")
	invited := testutil.NewTestUser(company.ID, "Invited", testutil.WithStatus(model.StatusInvited))
	logs := []model.SessionLog{testutil.NewTestLog(active, now), testutil.NewTestLog(invited, now)}

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      []model.User{active, invited},
		WindowLogs:  logs,
		HistoryLogs: logs,
		Window:      w,
		AsOf:        now,
		Location:    time.UTC,
	})

	assert.Equal(t, 2, agg.Metrics.TotalEmployees)
	assert.Equal(t, 1, agg.Metrics.ActiveEmployees)
	assert.Equal(t, 2, agg.Metrics.SessionsToday)
	assert.Equal(t, 100, agg.Metrics.ParticipationRate)
	assert.LessOrEqual(t, agg.Metrics.WindowParticipationRate, 100)
}

func TestAggregate_TrendMatchesWindowAtBoundaries(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeLast7)
	u := testutil.NewTestUser(company.ID, "Alice")
	start := w.StartInstant(time.UTC)
	end := w.EndInstant(time.UTC)
	logs := []model.SessionLog{
		testutil.NewTestLog(u, start),
		testutil.NewTestLog(u, end),
		testutil.NewTestLog(u, start.Add(-time.Millisecond)),
		testutil.NewTestLog(u, end.Add(time.Millisecond)),
		testutil.NewTestLog(u, start.Add(50*time.Hour)),
	}

	agg := Aggregate(AggregateInput{
		CompanyID:  company.ID,
		Roster:     []model.User{u},
		WindowLogs: logs,
		Window:     w,
		AsOf:       now,
		Location:   time.UTC,
	})

	sum := 0
	for _, dc := range agg.Trend {
		sum += dc.Count
	}
	assert.Equal(t, 3, agg.Metrics.SessionsInWindow)
	assert.Equal(t, agg.Metrics.SessionsInWindow, sum)
	assert.Equal(t, 1, agg.Trend[0].Count)
	assert.Equal(t, 1, agg.Trend[2].Count)
	assert.Equal(t, 1, agg.Trend[6].Count)
	assert.Equal(t, 3, agg.Users[0].SessionsInWindow)
}

func TestAggregate_IgnoresOtherCompanies(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeLast7)
	other := testutil.NewTestCompany("Other")
	alice := testutil.NewTestUser(company.ID, "Alice")
	oscar := testutil.NewTestUser(other.ID, "Oscar")
	hr := testutil.NewTestUser(company.ID, "Harriet", testutil.WithRole(model.RoleHR))
	logs := []model.SessionLog{
		testutil.NewTestLog(alice, now),
		testutil.NewTestLog(oscar, now),
		testutil.NewTestLog(oscar, now.Add(-time.Hour)),
	}

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      []model.User{alice, oscar, hr, alice},
		WindowLogs:  logs,
		HistoryLogs: logs,
		Window:      w,
		AsOf:        now,
		Location:    time.UTC,
	})

	assert.Equal(t, 1, agg.Metrics.TotalEmployees)
	assert.Equal(t, 1, agg.Metrics.SessionsToday)
	assert.Equal(t, 1, agg.Metrics.SessionsInWindow)
	require.Len(t, agg.Users, 1)
	assert.Equal(t, alice.ID, agg.Users[0].UserID)
}

func TestAggregate_StreakAndWeekComeFromHistory(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeToday)
	u := testutil.NewTestUser(company.ID, "Alice")
	asOf := model.DateOf(now, time.UTC)
	history := testutil.NewTestLogsOnDays(u, asOf, 0, 1, 2, 3, 9, 10)
	// A second session on the same day must not extend the streak.
	history = append(history, testutil.NewTestLog(u, asOf.AddDays(-1).Start(time.UTC).Add(9*time.Hour)))

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      []model.User{u},
		WindowLogs:  history[:1],
		HistoryLogs: history,
		Window:      w,
		AsOf:        now,
		Location:    time.UTC,
	})

	require.Len(t, agg.Users, 1)
	m := agg.Users[0]
	assert.Equal(t, 1, m.SessionsToday)
	assert.Equal(t, 5, m.SessionsWeek)
	assert.Equal(t, 1, m.SessionsInWindow)
	assert.Equal(t, 4, m.CurrentStreak)
}

func TestAggregate_StreakFromPerUserHistories(t *testing.T) {
	company, w, now := aggregateFixture(t, RangeToday)
	alice := testutil.NewTestUser(company.ID, "Alice")
	bob := testutil.NewTestUser(company.ID, "Bob")
	asOf := model.DateOf(now, time.UTC)
	recent := testutil.NewTestLogsOnDays(alice, asOf, 0)

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      []model.User{alice, bob},
		WindowLogs:  recent,
		HistoryLogs: recent,
		Histories: map[string][]model.SessionLog{
			alice.ID: testutil.NewTestLogsOnDays(alice, asOf, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8),
		},
		Window:   w,
		AsOf:     now,
		Location: time.UTC,
	})

	require.Len(t, agg.Users, 2)
	assert.Equal(t, 9, agg.Users[0].CurrentStreak)
	assert.Equal(t, 1, agg.Users[0].SessionsWeek)
	assert.Equal(t, 0, agg.Users[1].CurrentStreak)
}

func TestAggregate_BucketsByLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	company := testutil.NewTestCompany("Acme")
	// 2025-01-10 20:00 UTC is already 2025-01-11 in Tokyo.
	now := time.Date(2025, time.January, 10, 20, 0, 0, 0, time.UTC)
	w, err := ResolveWindow(RangeToday, nil, nil, now, jst)
	require.NoError(t, err)
	u := testutil.NewTestUser(company.ID, "Aiko")
	logs := []model.SessionLog{
		testutil.NewTestLog(u, time.Date(2025, time.January, 10, 16, 0, 0, 0, time.UTC)),
		testutil.NewTestLog(u, time.Date(2025, time.January, 10, 14, 0, 0, 0, time.UTC)),
	}

	agg := Aggregate(AggregateInput{
		CompanyID:   company.ID,
		Roster:      []model.User{u},
		WindowLogs:  logs,
		HistoryLogs: logs,
		Window:      w,
		AsOf:        now,
		Location:    jst,
	})

	assert.Equal(t, 1, agg.Metrics.SessionsToday)
	assert.Equal(t, 1, agg.Metrics.SessionsInWindow)
	assert.Equal(t, 2, agg.Users[0].CurrentStreak)
}
