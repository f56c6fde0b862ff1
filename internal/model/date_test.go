package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	instant := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2025, 1, 10), DateOf(instant, time.UTC))
	assert.Equal(t, NewDate(2025, 1, 11), DateOf(instant, tokyo))
}

func TestDate_AddDaysCrossesMonthAndYear(t *testing.T) {
	assert.Equal(t, NewDate(2025, 2, 1), NewDate(2025, 1, 31).AddDays(1))
	assert.Equal(t, NewDate(2024, 12, 31), NewDate(2025, 1, 1).AddDays(-1))
	assert.Equal(t, NewDate(2024, 2, 29), NewDate(2024, 3, 1).AddDays(-1))
}

func TestDate_Bounds(t *testing.T) {
	d := NewDate(2025, 3, 9)
	start := d.Start(time.UTC)
	end := d.End(time.UTC)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, 999*time.Millisecond, time.Duration(end.Nanosecond()))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-04", d.String())

	_, err = ParseDate("01/04/2025")
	assert.Error(t, err)
}

func TestDate_DaysUntil(t *testing.T) {
	assert.Equal(t, 29, NewDate(2025, 1, 2).DaysUntil(NewDate(2025, 1, 31)))
	assert.Equal(t, -1, NewDate(2025, 1, 2).DaysUntil(NewDate(2025, 1, 1)))
	assert.True(t, NewDate(2025, 1, 1).Before(NewDate(2025, 1, 2)))
	assert.True(t, NewDate(2025, 1, 3).After(NewDate(2025, 1, 2)))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("deleted").Valid())
}
