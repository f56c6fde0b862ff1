// Package stats contains the participation analytics: date windows,
// streaks, aggregation, leaderboards and their text rendering.
package stats

import (
	"errors"
	"math"
	"strings"

	"github.com/verte-zerg/deskpilot/internal/model"
)

const sparkChars = " .:-=+*#%@"

var (
	// ErrIncompleteRange is returned when a custom range is missing a bound.
	// Callers must not aggregate on a partial range.
	ErrIncompleteRange = errors.New("custom range requires both start and end dates")
	// ErrInvalidRange is returned for unknown range kinds or inverted bounds.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrEmployeeNotFound is returned when an employee is not part of the
	// requested company.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Percent returns round-half-up(100 * part / whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TrendValues converts daily counts into a float series for plotting.
func TrendValues(trend []model.DailyCount) []float64 {
	out := make([]float64, len(trend))
	for i, dc := range trend {
		out[i] = float64(dc.Count)
	}
	return out
}
