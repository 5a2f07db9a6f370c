package dto

import (
	"github.com/qyinm/trendtui/format"
	"github.com/qyinm/trendtui/types"
)

func FromTimeline(points []types.TimelinePoint) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, Point{Label: p.Label(), Value: p.Value()})
	}
	return out
}

func FromRanked(items []types.RankedItem) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{Name: it.Name(), Value: it.Value()})
	}
	return out
}

// FromTrendsData converts a fetch result together with its derived view:
// summary statistics and axisLabels sampled x-axis labels.
func FromTrendsData(mode types.SourceMode, keyword string, data types.TrendsData, axisLabels int) Trends {
	stats := format.Summarize(data.Timeline())
	labels := format.AxisLabels(data.Timeline(), axisLabels)
	if labels == nil {
		labels = []string{}
	}
	return Trends{
		Mode:       mode.String(),
		Keyword:    keyword,
		Timeline:   FromTimeline(data.Timeline()),
		AxisLabels: labels,
		Ranking:    FromRanked(data.Ranking()),
		Breakdown:  FromRanked(data.Breakdown()),
		Stats: Stats{
			Peak:    stats.Peak,
			Average: stats.Average,
			Current: stats.Current,
		},
	}
}
