// Package format derives display-ready numbers and labels from TrendsData.
// Nothing here mutates the model.
package format

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/qyinm/trendtui/normalize"
	"github.com/qyinm/trendtui/types"
)

const (
	// DefaultAxisLabels is the number of x-axis labels under the line chart
	DefaultAxisLabels = 7
	// MaxLabelWidth is the longest name shown untruncated in bar charts
	MaxLabelWidth = 16
	ellipsis      = "…"
)

var yearRe = regexp.MustCompile(`\d{4}`)

// Stats summarizes a timeline
type Stats struct {
	Peak    int
	Average int
	Current int
}

// AxisLabels picks count evenly spaced points from the timeline and renders
// each as "Mon 'YY". Indices may repeat when the timeline is shorter than count.
func AxisLabels(timeline []types.TimelinePoint, count int) []string {
	if len(timeline) == 0 || count <= 0 {
		return []string{}
	}
	if count == 1 {
		return []string{ShortDate(timeline[0].Label())}
	}

	step := float64(len(timeline)-1) / float64(count-1)
	labels := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Round(float64(i) * step))
		labels = append(labels, ShortDate(timeline[idx].Label()))
	}
	return labels
}

// ShortDate reformats a raw timeline label.
// "2025-03-03" -> "Mar '25"; "Mar 3, 2025" -> "Mar '25"; "Mar 3" -> "Mar".
func ShortDate(raw string) string {
	if strings.Contains(raw, "-") && len(raw) >= 7 && isDigits(raw[:4]) {
		return normalize.MonthLabel(raw[:7])
	}

	month := raw
	if utf8.RuneCountInString(month) > 3 {
		month = string([]rune(month)[:3])
	}
	year := yearRe.FindString(raw)
	if year == "" {
		return month
	}
	return month + " '" + year[2:]
}

// Summarize computes peak, rounded mean and last value.
// An empty timeline yields zeros.
func Summarize(timeline []types.TimelinePoint) Stats {
	if len(timeline) == 0 {
		return Stats{}
	}

	peak, sum := timeline[0].Value(), 0
	for _, p := range timeline {
		if p.Value() > peak {
			peak = p.Value()
		}
		sum += p.Value()
	}

	return Stats{
		Peak:    peak,
		Average: int(math.Round(float64(sum) / float64(len(timeline)))),
		Current: timeline[len(timeline)-1].Value(),
	}
}

// Truncate shortens names longer than MaxLabelWidth runes to
// MaxLabelWidth-1 runes plus an ellipsis.
func Truncate(name string) string {
	if utf8.RuneCountInString(name) <= MaxLabelWidth {
		return name
	}
	return string([]rune(name)[:MaxLabelWidth-1]) + ellipsis
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
