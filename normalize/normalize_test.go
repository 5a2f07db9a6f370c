package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		raw  int64
		peak int64
		want int
	}{
		{name: "peak maps to 100", raw: 250, peak: 250, want: 100},
		{name: "half", raw: 50, peak: 100, want: 50},
		{name: "rounds half up", raw: 1, peak: 200, want: 1},
		{name: "rounds down", raw: 1, peak: 300, want: 0},
		{name: "zero peak", raw: 0, peak: 0, want: 0},
		{name: "negative peak clamps denominator", raw: 0, peak: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scale(tt.raw, tt.peak))
		})
	}
}

func TestScaleBucketsRangeAndPeak(t *testing.T) {
	buckets := []Bucket{
		{Label: "a", Total: 17},
		{Label: "b", Total: 9031},
		{Label: "c", Total: 0},
		{Label: "d", Total: 4444},
		{Label: "e", Total: 9031},
	}

	scaled := ScaleBuckets(buckets)
	require.Len(t, scaled, len(buckets))

	hundreds := 0
	for _, v := range scaled {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
		if v == 100 {
			hundreds++
		}
	}
	assert.Equal(t, 2, hundreds)
	assert.Equal(t, []int{0, 100, 0, 49, 100}, scaled)
}

func TestScaleBucketsAllZero(t *testing.T) {
	scaled := ScaleBuckets([]Bucket{{Total: 0}, {Total: 0}, {Total: 0}})
	assert.Equal(t, []int{0, 0, 0}, scaled)
}

func TestTopN(t *testing.T) {
	type item struct {
		name  string
		value int64
	}
	items := []item{
		{"a", 3}, {"b", 7}, {"c", 3}, {"d", 9}, {"e", 7}, {"f", 3},
	}
	value := func(i item) int64 { return i.value }

	t.Run("caps and keeps tie order", func(t *testing.T) {
		got := TopN(items, 4, value)
		require.Len(t, got, 4)
		names := make([]string, 0, len(got))
		for _, g := range got {
			names = append(names, g.name)
		}
		assert.Equal(t, []string{"d", "b", "e", "a"}, names)
	})

	t.Run("fewer than n is not padded", func(t *testing.T) {
		got := TopN(items[:2], 8, value)
		assert.Len(t, got, 2)
	})

	t.Run("input untouched", func(t *testing.T) {
		_ = TopN(items, 3, value)
		assert.Equal(t, "a", items[0].name)
		assert.Equal(t, "d", items[3].name)
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Empty(t, TopN(items, 0, value))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Truncate([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Truncate([]int{1}, 12))
	assert.Empty(t, Truncate([]int{1, 2}, -1))
}

func TestWeekly(t *testing.T) {
	daily := dailyRange(t, "2024-01-01", 16, 1)

	weeks := Weekly(daily)
	require.Len(t, weeks, 3)
	assert.Equal(t, Bucket{Label: "2024-01-01", Total: 7}, weeks[0])
	assert.Equal(t, Bucket{Label: "2024-01-08", Total: 7}, weeks[1])
	assert.Equal(t, Bucket{Label: "2024-01-15", Total: 2}, weeks[2])

	assert.Empty(t, Weekly(nil))
}

func TestMonthly(t *testing.T) {
	// 2024 is a leap year: 31 + 29 days
	daily := dailyRange(t, "2024-01-01", 60, 10)
	require.Equal(t, "2024-02-29", daily[len(daily)-1].Day)

	months := Monthly(daily)
	assert.Equal(t, []Bucket{
		{Label: "2024-01", Total: 310},
		{Label: "2024-02", Total: 290},
	}, months)
}

func TestMonthlyChronologicalAcrossYears(t *testing.T) {
	daily := []DailyCount{
		{Day: "2025-01-03", Downloads: 1},
		{Day: "2024-12-30", Downloads: 2},
		{Day: "2024-11-02", Downloads: 3},
		{Day: "bad", Downloads: 100},
	}

	months := Monthly(daily)
	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01"}, labels)
}

func TestMonthLabel(t *testing.T) {
	tests := map[string]string{
		"2025-03": "Mar '25",
		"2024-12": "Dec '24",
		"2024-13": "? '24",
		"2024":    "Jan '24",
		"":        "Jan '",
	}
	for in, want := range tests {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.Equal(t, want, MonthLabel(in))
		})
	}
}

func TestWeekLabel(t *testing.T) {
	assert.Equal(t, "Mar '25 03", WeekLabel("2025-03-03"))
	assert.Equal(t, "Nov '24", WeekLabel("2024-11"))
}

func dailyRange(t *testing.T, start string, days int, count int64) []DailyCount {
	t.Helper()
	day, err := time.Parse(time.DateOnly, start)
	require.NoError(t, err)

	out := make([]DailyCount, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, DailyCount{Day: day.AddDate(0, 0, i).Format(time.DateOnly), Downloads: count})
	}
	return out
}
