package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/qyinm/trendtui/types"
)

func TestFromTrendsData(t *testing.T) {
	data := types.NewTrendsData(
		[]types.TimelinePoint{
			types.NewTimelinePoint("2024-12-30", 50),
			types.NewTimelinePoint("2025-01-06", 100),
			types.NewTimelinePoint("2025-01-13", 25),
		},
		[]types.RankedItem{types.NewRankedItem("Jan '25 06", 100)},
		[]types.RankedItem{
			types.NewRankedItem("Dec '24", 6),
			types.NewRankedItem("Jan '25", 100),
		},
	)

	out := FromTrendsData(types.PackageDownloads, "react", data, 2)
	if out.Mode != "npm" || out.Keyword != "react" {
		t.Fatalf("unexpected header fields: %+v", out)
	}
	if len(out.Timeline) != 3 || out.Timeline[1] != (Point{Label: "2025-01-06", Value: 100}) {
		t.Errorf("unexpected timeline: %+v", out.Timeline)
	}
	if len(out.AxisLabels) != 2 || out.AxisLabels[0] != "Dec '24" || out.AxisLabels[1] != "Jan '25" {
		t.Errorf("unexpected axis labels: %v", out.AxisLabels)
	}
	if out.Stats != (Stats{Peak: 100, Average: 58, Current: 25}) {
		t.Errorf("unexpected stats: %+v", out.Stats)
	}
	if len(out.Breakdown) != 2 || out.Breakdown[0].Name != "Dec '24" {
		t.Errorf("breakdown order must be preserved: %+v", out.Breakdown)
	}
}

func TestEmptyCollectionsMarshalAsArrays(t *testing.T) {
	b, err := json.Marshal(FromTrendsData(types.SearchTrends, "x", types.TrendsData{}, 7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, field := range []string{`"timeline":[]`, `"axis_labels":[]`, `"ranking":[]`, `"breakdown":[]`} {
		if !strings.Contains(s, field) {
			t.Errorf("expected %s in %s", field, s)
		}
	}
}
