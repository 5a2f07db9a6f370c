package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/trendtui/types"
)

func TestResample(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		n      int
		want   []int
	}{
		{"empty", nil, 3, []int{0, 0, 0}},
		{"single value", []int{42}, 3, []int{42, 42, 42}},
		{"widen", []int{0, 100}, 4, []int{0, 0, 100, 100}},
		{"narrow", []int{1, 2, 3, 4, 5}, 3, []int{1, 3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resample(tt.values, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("resample = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestCellLevels(t *testing.T) {
	if cell(100, 11, 12) != '█' {
		t.Error("peak should fill the top row")
	}
	if cell(0, 0, 12) != ' ' {
		t.Error("zero should leave the bottom row empty")
	}
	if cell(50, 11, 12) != ' ' {
		t.Error("half value must not reach the top row")
	}
	if cell(50, 0, 12) != '█' {
		t.Error("half value should fill the bottom row")
	}
}

func TestRenderLineChartShape(t *testing.T) {
	out := renderLineChart([]int{0, 50, 100}, 25, 6, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "100 ┤") || !strings.HasPrefix(lines[5], "  0 ┤") {
		t.Errorf("unexpected gutter:\n%s", out)
	}
	if renderLineChart([]int{1}, 3, 6, lipgloss.NewStyle(), lipgloss.NewStyle()) != "" {
		t.Error("chart narrower than the gutter should render nothing")
	}
}

func TestRenderAxisSkipsOverlaps(t *testing.T) {
	got := renderAxis([]string{"Jan '25", "Feb '25", "Mar '25"}, 30)
	if !strings.HasPrefix(got, "Jan '25") || !strings.HasSuffix(got, "Mar '25") {
		t.Errorf("first and last labels should sit at the edges: %q", got)
	}

	crowded := renderAxis([]string{"Jan '25", "Feb '25", "Mar '25"}, 10)
	if strings.Count(crowded, "'25") > 1 {
		t.Errorf("overlapping labels should be dropped: %q", crowded)
	}
	if renderAxis(nil, 10) != "" {
		t.Error("no labels should render nothing")
	}
}

func TestRenderBars(t *testing.T) {
	items := []types.RankedItem{
		types.NewRankedItem("United States of America", 100),
		types.NewRankedItem("Peru", 7),
	}
	out := renderBars(items, 40, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "United States o…") {
		t.Errorf("long label should be truncated: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "100") || !strings.HasSuffix(lines[1], "  7") {
		t.Errorf("values should be right aligned:\n%s", out)
	}
	if renderBars(nil, 40, lipgloss.NewStyle(), lipgloss.NewStyle()) != "No data" {
		t.Error("empty ranking should say so")
	}
}
