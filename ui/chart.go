package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/qyinm/trendtui/format"
	"github.com/qyinm/trendtui/types"
)

const (
	chartWidth  = 90
	chartHeight = 12
	gutterWidth = 5 // "100 ┤"
)

// eighth blocks, lowest first
var levels = []rune("▁▂▃▄▅▆▇█")

// renderLineChart draws values (0-100) as a filled area chart of the given
// size, resampling to the available columns.
func renderLineChart(values []int, width, height int, style, axis lipgloss.Style) string {
	plot := width - gutterWidth
	if plot < 1 || height < 1 {
		return ""
	}
	cols := resample(values, plot)

	var b strings.Builder
	for row := height - 1; row >= 0; row-- {
		b.WriteString(axis.Render(gutter(row, height)))
		var line strings.Builder
		for _, v := range cols {
			line.WriteRune(cell(v, row, height))
		}
		b.WriteString(style.Render(line.String()))
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// resample maps values onto n columns by nearest index
func resample(values []int, n int) []int {
	out := make([]int, n)
	if len(values) == 0 {
		return out
	}
	if len(values) == 1 || n == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

func cell(value, row, height int) rune {
	units := value * height * len(levels) / 100
	base := row * len(levels)
	switch {
	case units >= base+len(levels):
		return levels[len(levels)-1]
	case units > base:
		return levels[units-base-1]
	default:
		return ' '
	}
}

func gutter(row, height int) string {
	switch row {
	case height - 1:
		return "100 ┤"
	case 0:
		return "  0 ┤"
	case (height - 1) / 2:
		return " 50 ┤"
	default:
		return "    │"
	}
}

// renderAxis spreads labels evenly across width, dropping any that would
// overlap the previous one.
func renderAxis(labels []string, width int) string {
	if len(labels) == 0 || width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	end := 0
	for i, label := range labels {
		w := runewidth.StringWidth(label)
		pos := 0
		if len(labels) > 1 {
			pos = i * (width - w) / (len(labels) - 1)
		}
		if pos < end || pos+w > width {
			continue
		}
		copy(line[pos:], []rune(label))
		end = pos + w + 1
	}
	return strings.TrimRight(string(line), " ")
}

// renderBars draws one horizontal bar per item with a truncated label
func renderBars(items []types.RankedItem, width int, bar, dim lipgloss.Style) string {
	if len(items) == 0 {
		return dim.Render("No data")
	}
	barWidth := width - format.MaxLabelWidth - 6
	if barWidth < 1 {
		barWidth = 1
	}
	lines := make([]string, len(items))
	for i, item := range items {
		label := runewidth.FillRight(format.Truncate(item.Name()), format.MaxLabelWidth)
		n := item.Value() * barWidth / 100
		lines[i] = fmt.Sprintf("%s %s %s",
			label,
			bar.Render(runewidth.FillRight(strings.Repeat("█", n), barWidth)),
			dim.Render(fmt.Sprintf("%3d", item.Value())),
		)
	}
	return strings.Join(lines, "\n")
}
