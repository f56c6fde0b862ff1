package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/deskpilot/internal/model"
)

func TestComputeStreak(t *testing.T) {
	asOf := model.NewDate(2025, time.January, 10)
	days := func(offsets ...int) []model.Date {
		out := make([]model.Date, 0, len(offsets))
		for _, off := range offsets {
			out = append(out, asOf.AddDays(-off))
		}
		return out
	}

	tests := []struct {
		name  string
		dates []model.Date
		want  int
	}{
		{name: "no activity", dates: nil, want: 0},
		{name: "run ending today", dates: days(0, 1, 2), want: 3},
		{name: "run ending yesterday", dates: days(1, 2), want: 2},
		{name: "run ending two days ago", dates: days(2, 3, 4), want: 0},
		{name: "gap stops the count", dates: days(0, 1, 3, 4, 5), want: 2},
		{name: "duplicates count once", dates: days(0, 0, 1, 1, 1), want: 2},
		{name: "unsorted input", dates: days(2, 0, 1), want: 3},
		{name: "only today", dates: days(0), want: 1},
		{name: "future dates ignored", dates: days(-2, -1, 0, 1), want: 2},
		{name: "only future dates", dates: days(-3), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.dates, asOf))
		})
	}
}

func TestComputeStreak_CrossesMonthBoundary(t *testing.T) {
	asOf := model.NewDate(2025, time.March, 1)
	dates := []model.Date{
		model.NewDate(2025, time.March, 1),
		model.NewDate(2025, time.February, 28),
		model.NewDate(2025, time.February, 27),
	}
	assert.Equal(t, 3, ComputeStreak(dates, asOf))
}

func TestActivityDates_UsesLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	logs := []model.SessionLog{
		{UserID: "u1", Timestamp: time.Date(2025, time.January, 10, 16, 0, 0, 0, time.UTC)},
		{UserID: "u2", Timestamp: time.Date(2025, time.January, 10, 1, 0, 0, 0, time.UTC)},
	}
	dates := ActivityDates(logs, "u1", jst)
	assert.Equal(t, []model.Date{model.NewDate(2025, time.January, 11)}, dates)
}
