package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

// RangeKind names a report range.
type RangeKind string

const (
	RangeToday  RangeKind = "today"
	RangeLast7  RangeKind = "7days"
	RangeLast30 RangeKind = "30days"
	RangeCustom RangeKind = "custom"
)

// ParseRangeKind accepts the canonical range names plus last7/last30.
func ParseRangeKind(s string) (RangeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return RangeToday, nil
	case "7days", "last7", "7d":
		return RangeLast7, nil
	case "30days", "last30", "30d":
		return RangeLast30, nil
	case "custom":
		return RangeCustom, nil
	default:
		return "", fmt.Errorf("%w: unknown range %q (want today, 7days, 30days or custom)", ErrInvalidRange, s)
	}
}

// Window is a resolved inclusive date range with its explicit days.
type Window struct {
	Kind  RangeKind
	Start model.Date
	End   model.Date
	Days  []model.Date
}

// ResolveWindow computes the boundaries of a named range as of now.
// Custom ranges need both bounds; a missing one yields ErrIncompleteRange.
func ResolveWindow(kind RangeKind, customStart, customEnd *model.Date, now time.Time, loc *time.Location) (Window, error) {
	today := model.DateOf(now, loc)
	var start, end model.Date
	switch kind {
	case RangeToday:
		start, end = today, today
	case RangeLast7:
		start, end = today.AddDays(-6), today
	case RangeLast30:
		start, end = today.AddDays(-29), today
	case RangeCustom:
		if customStart == nil || customEnd == nil || customStart.IsZero() || customEnd.IsZero() {
			return Window{}, ErrIncompleteRange
		}
		start, end = *customStart, *customEnd
		if start.After(end) {
			return Window{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, start, end)
		}
	default:
		return Window{}, fmt.Errorf("%w: unknown range %q", ErrInvalidRange, kind)
	}
	return Window{
		Kind:  kind,
		Start: start,
		End:   end,
		Days:  daysBetween(start, end),
	}, nil
}

// TrailingWindow returns the n-day window ending on asOf.
func TrailingWindow(asOf model.Date, n int) Window {
	if n < 1 {
		n = 1
	}
	start := asOf.AddDays(-(n - 1))
	return Window{Kind: RangeCustom, Start: start, End: asOf, Days: daysBetween(start, asOf)}
}

// StartInstant is the inclusive lower bound, 00:00:00 of Start.
func (w Window) StartInstant(loc *time.Location) time.Time {
	return w.Start.Start(loc)
}

// EndInstant is the inclusive upper bound, 23:59:59.999 of End.
func (w Window) EndInstant(loc *time.Location) time.Time {
	return w.End.End(loc)
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	d := model.DateOf(t, loc)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Label is a short human description used in report headings and CSV headers.
func (w Window) Label() string {
	switch w.Kind {
	case RangeToday:
		return "Today"
	case RangeLast7:
		return "Last 7 Days"
	case RangeLast30:
		return "Last 30 Days"
	default:
		if w.Start == w.End {
			return w.Start.String()
		}
		return fmt.Sprintf("%s to %s", w.Start, w.End)
	}
}

func daysBetween(start, end model.Date) []model.Date {
	n := start.DaysUntil(end) + 1
	if n <= 0 {
		return nil
	}
	days := make([]model.Date, 0, n)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
