package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/deskpilot/internal/model"
)

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisSeparator       = " │ "
	colorTrend          = "\x1b[36m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// PlotTrend renders a daily session count series as a braille line chart.
// The vertical axis runs from zero to the busiest day.
func PlotTrend(w io.Writer, title string, trend []model.DailyCount, width, height int, forceColor bool) error {
	if len(trend) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	maxCount := 0
	for _, dc := range trend {
		if dc.Count > maxCount {
			maxCount = dc.Count
		}
	}
	labels := makeAxisLabels(height, maxCount)
	axisWidth := 0
	for _, l := range labels {
		if len(l) > axisWidth {
			axisWidth = len(l)
		}
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth(), axisWidth)
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	values := resampleSeries(TrendValues(trend), width)
	cells := makeCells(height, width)
	top := float64(maxCount)
	if top == 0 {
		top = 1
	}
	prevX, prevY := -1, -1
	for x, v := range values {
		py := valueToRow(v, 0, top, height*4)
		px := x * 2
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				setBrailleDot(cells, dx, dy)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	useColor := shouldUseColor(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisWidth, labels[y], axisSeparator))
		if useColor {
			row.WriteString(colorTrend)
		}
		for x := 0; x < width; x++ {
			row.WriteRune(brailleFromMask(cells[y][x]))
		}
		if useColor {
			row.WriteString(colorReset)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	first := trend[0].Date.String()
	last := trend[len(trend)-1].Date.String()
	gap := width - len(first) - len(last)
	footer := first
	if gap > 0 && first != last {
		footer = first + strings.Repeat(" ", gap) + last
	}
	pad := strings.Repeat(" ", axisWidth+len([]rune(axisSeparator)))
	if _, err := fmt.Fprintln(w, pad+footer); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available
// width next to an axis of the given label width.
func PlotWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - labelWidth - len([]rune(axisSeparator))
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height, maxCount int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = strconv.Itoa(maxCount)
	if height > 2 && maxCount > 1 {
		labels[height/2] = strconv.Itoa(maxCount / 2)
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// resampleSeries stretches or compresses values to exactly width points.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := int(float64(i) * float64(len(values)) / float64(width))
			end := int(float64(i+1) * float64(len(values)) / float64(width))
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if width == 1 || len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

// drawLine walks a Bresenham line from (x0,y0) to (x1,y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
