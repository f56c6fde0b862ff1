package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskpilot/internal/model"
	"github.com/verte-zerg/deskpilot/internal/store"
	"github.com/verte-zerg/deskpilot/internal/testutil"
)

func TestBuildDetail(t *testing.T) {
	company := testutil.NewTestCompany("Acme")
	u := testutil.NewTestUser(company.ID, "Alice")
	other := testutil.NewTestUser(company.ID, "Bob")
	exercises := []model.Exercise{
		{ID: "neck", Name: "Neck Roll"},
		{ID: "wrist", Name: "Wrist Stretch"},
	}
	now := testutil.Fixed
	logs := []model.SessionLog{
		testutil.NewTestLog(u, now.Add(-1*time.Hour), testutil.WithExercise("neck")),
		testutil.NewTestLog(u, now.Add(-25*time.Hour), testutil.WithExercise("wrist")),
		testutil.NewTestLog(u, now.Add(-49*time.Hour), testutil.WithExercise("wrist")),
		testutil.NewTestLog(u, now.Add(-2*time.Hour), testutil.WithExercise("neck")),
		testutil.NewTestLog(u, now.AddDate(0, 0, -45), testutil.WithExercise("gone")),
		testutil.NewTestLog(other, now, testutil.WithExercise("neck")),
	}

	d := BuildDetail(u, logs, exercises, now, time.UTC)

	assert.Equal(t, 5, d.TotalSessions)
	assert.Equal(t, 3, d.CurrentStreak)
	require.Len(t, d.Trend, DetailTrendDays)
	assert.Equal(t, model.DateOf(now, time.UTC), d.Trend[len(d.Trend)-1].Date)
	assert.Equal(t, 2, d.Trend[len(d.Trend)-1].Count)
	sum := 0
	for _, dc := range d.Trend {
		sum += dc.Count
	}
	assert.Equal(t, 4, sum)

	require.Len(t, d.Breakdown, 3)
	// Equal counts are ordered by the most recent session.
	assert.Equal(t, "Neck Roll", d.Breakdown[0].Name)
	assert.Equal(t, 2, d.Breakdown[0].Count)
	assert.True(t, d.Breakdown[0].LastAt.Equal(now.Add(-1*time.Hour)))
	assert.Equal(t, "Wrist Stretch", d.Breakdown[1].Name)
	assert.Equal(t, unknownExercise, d.Breakdown[2].Name)
}

func TestEmployeeDetail(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	company := testutil.NewTestCompany("Acme")
	u := testutil.NewTestUser(company.ID, "Alice")
	asOf := model.DateOf(testutil.Fixed, time.UTC)
	testutil.Seed(t, st, company, []model.User{u}, testutil.NewTestLogsOnDays(u, asOf, 1, 2))
	_, err := st.InsertExercise(ctx, model.Exercise{Name: "Shoulder Shrug"})
	require.NoError(t, err)

	cached, err := store.NewCached(st, 8)
	require.NoError(t, err)
	d, err := EmployeeDetail(ctx, cached, company.ID, u.ID, testutil.Fixed, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, u.ID, d.User.ID)
	assert.Equal(t, 2, d.TotalSessions)
	assert.Equal(t, 2, d.CurrentStreak)
}

func TestEmployeeDetail_NotInCompany(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	company := testutil.NewTestCompany("Acme")
	other := testutil.NewTestCompany("Other")
	oscar := testutil.NewTestUser(other.ID, "Oscar")
	testutil.Seed(t, st, company, nil, nil)
	testutil.Seed(t, st, other, []model.User{oscar}, nil)

	_, err := EmployeeDetail(ctx, st, company.ID, oscar.ID, testutil.Fixed, time.UTC)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	var notIn *NotInCompanyError
	require.True(t, errors.As(err, &notIn))
	assert.Equal(t, company.ID, notIn.CompanyID)

	_, err = EmployeeDetail(ctx, st, company.ID, "missing", testutil.Fixed, time.UTC)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
