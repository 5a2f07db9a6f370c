package types

import (
	"context"
	"fmt"
	"strings"
)

// SourceMode selects which upstream feeds the dashboard
type SourceMode int

const (
	SearchTrends SourceMode = iota
	PackageDownloads
)

// String returns the string representation of the mode
func (m SourceMode) String() string {
	switch m {
	case SearchTrends:
		return "trends"
	case PackageDownloads:
		return "npm"
	default:
		return "unknown"
	}
}

// ParseSourceMode is the inverse of String. The empty string maps to SearchTrends.
func ParseSourceMode(raw string) (SourceMode, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "trends", "google":
		return SearchTrends, nil
	case "npm", "downloads":
		return PackageDownloads, nil
	default:
		return SearchTrends, fmt.Errorf("invalid source mode %q; expected trends|npm", raw)
	}
}

// DefaultKeyword is used when no keyword is given on the command line
func (m SourceMode) DefaultKeyword() string {
	if m == PackageDownloads {
		return "react"
	}
	return "bitcoin"
}

// TimelinePoint is one sample of the interest-over-time series.
// Value is always on a 0-100 scale.
type TimelinePoint struct {
	label string
	value int
}

// NewTimelinePoint creates a new TimelinePoint
func NewTimelinePoint(label string, value int) TimelinePoint {
	return TimelinePoint{label: label, value: value}
}

func (p TimelinePoint) Label() string { return p.label }
func (p TimelinePoint) Value() int    { return p.value }

// RankedItem is a named score used for rankings and the breakdown table
type RankedItem struct {
	name  string
	value int
}

// NewRankedItem creates a new RankedItem
func NewRankedItem(name string, value int) RankedItem {
	return RankedItem{name: name, value: value}
}

func (r RankedItem) Name() string { return r.name }
func (r RankedItem) Value() int   { return r.value }

// TrendsData is the normalized result of one fetch, independent of source
type TrendsData struct {
	timeline  []TimelinePoint
	ranking   []RankedItem
	breakdown []RankedItem
}

// NewTrendsData creates a new TrendsData
func NewTrendsData(timeline []TimelinePoint, ranking, breakdown []RankedItem) TrendsData {
	return TrendsData{
		timeline:  timeline,
		ranking:   ranking,
		breakdown: breakdown,
	}
}

// Getters for TrendsData fields
func (d TrendsData) Timeline() []TimelinePoint { return d.timeline }
func (d TrendsData) Ranking() []RankedItem     { return d.ranking }
func (d TrendsData) Breakdown() []RankedItem   { return d.breakdown }

// Values returns the timeline values in order
func (d TrendsData) Values() []int {
	out := make([]int, 0, len(d.timeline))
	for _, p := range d.timeline {
		out = append(out, p.value)
	}
	return out
}

// Source is the core abstraction for data access.
// No bubbletea dependency; the TUI, the MCP server and tests all call it directly.
type Source interface {
	Fetch(ctx context.Context, keyword string) (TrendsData, error)
}
