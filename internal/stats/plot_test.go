package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/deskpilot/internal/model"
)

func TestPlotTrend(t *testing.T) {
	start := model.NewDate(2025, time.January, 6)
	counts := []int{1, 4, 0, 2, 3}
	trend := make([]model.DailyCount, len(counts))
	for i, c := range counts {
		trend[i] = model.DailyCount{Date: start.AddDays(i), Count: c}
	}

	var buf bytes.Buffer
	if err := PlotTrend(&buf, "Daily Sessions", trend, 30, 4, false); err != nil {
		t.Fatalf("PlotTrend failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Daily Sessions") {
		t.Fatalf("expected title in output")
	}
	if strings.Contains(out, colorTrend) {
		t.Fatalf("expected no color codes for a buffer")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected %d lines of output, got %d", 6, len(lines))
	}
	if !strings.HasPrefix(lines[1], "4"+axisSeparator) {
		t.Fatalf("expected top axis label 4, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "0"+axisSeparator) {
		t.Fatalf("expected bottom axis label 0, got %q", lines[4])
	}
	footer := lines[5]
	if !strings.Contains(footer, "2025-01-06") || !strings.HasSuffix(footer, "2025-01-10") {
		t.Fatalf("unexpected footer %q", footer)
	}
}

func TestPlotTrendEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotTrend(&buf, "Empty", nil, 20, 4, false); err != nil {
		t.Fatalf("PlotTrend failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotTrendAllZero(t *testing.T) {
	trend := []model.DailyCount{
		{Date: model.NewDate(2025, time.January, 1)},
		{Date: model.NewDate(2025, time.January, 2)},
	}
	var buf bytes.Buffer
	if err := PlotTrend(&buf, "", trend, 12, 3, false); err != nil {
		t.Fatalf("PlotTrend failed: %v", err)
	}
	if !strings.Contains(buf.String(), "0"+axisSeparator) {
		t.Fatalf("expected zero axis label in %q", buf.String())
	}
}
