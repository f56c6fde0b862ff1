package stats

import (
	"testing"
	"unicode/utf8"
)

func TestPlotWidthFor(t *testing.T) {
	labelWidth := 2
	total := 80
	expected := total - labelWidth - utf8.RuneCountInString(axisSeparator)
	if got := PlotWidthFor(total, labelWidth); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0, labelWidth); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(12, labelWidth); got != minPlotWidth {
		t.Fatalf("expected min width %d for narrow terminals, got %d", minPlotWidth, got)
	}
}
