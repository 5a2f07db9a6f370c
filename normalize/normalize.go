// Package normalize turns raw upstream magnitudes into the 0-100 index used
// throughout the dashboard, and groups daily counts into weekly and monthly
// buckets.
package normalize

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// WeekLength is the number of days folded into one weekly bucket
const WeekLength = 7

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DailyCount is one day of raw download counts. Day is YYYY-MM-DD.
type DailyCount struct {
	Day       string
	Downloads int64
}

// Bucket is an aggregated total with the label it is displayed under.
// For weekly buckets the label is the first day; for monthly ones, YYYY-MM.
type Bucket struct {
	Label string
	Total int64
}

// Scale maps raw onto 0-100 against peak. A peak below 1 is treated as 1 so
// all-zero input never divides by zero.
func Scale(raw, peak int64) int {
	if peak < 1 {
		peak = 1
	}
	v := int(math.Round(float64(raw) / float64(peak) * 100))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MaxTotal returns the largest bucket total, or 0 for no buckets
func MaxTotal(buckets []Bucket) int64 {
	var peak int64
	for _, b := range buckets {
		if b.Total > peak {
			peak = b.Total
		}
	}
	return peak
}

// ScaleBuckets scales every bucket against the largest total
func ScaleBuckets(buckets []Bucket) []int {
	peak := MaxTotal(buckets)
	out := make([]int, len(buckets))
	for i, b := range buckets {
		out[i] = Scale(b.Total, peak)
	}
	return out
}

// TopN returns at most n items ordered by value descending. Items with equal
// values keep their original relative order. The input is not modified.
func TopN[T any](items []T, n int, value func(T) int64) []T {
	if n <= 0 {
		return []T{}
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		va, vb := value(a), value(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Truncate returns the first n items, or all of them if there are fewer.
// It never pads.
func Truncate[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// Weekly folds consecutive runs of WeekLength days into buckets labelled by
// their first day. The final bucket may be shorter.
func Weekly(daily []DailyCount) []Bucket {
	buckets := make([]Bucket, 0, (len(daily)+WeekLength-1)/WeekLength)
	for i := 0; i < len(daily); i += WeekLength {
		end := min(i+WeekLength, len(daily))
		var total int64
		for _, d := range daily[i:end] {
			total += d.Downloads
		}
		buckets = append(buckets, Bucket{Label: daily[i].Day, Total: total})
	}
	return buckets
}

// Monthly sums daily counts per YYYY-MM key and returns the buckets in
// chronological order. Keys are zero padded so a string sort is enough.
// Days shorter than seven characters are skipped.
func Monthly(daily []DailyCount) []Bucket {
	totals := make(map[string]int64)
	for _, d := range daily {
		if len(d.Day) < 7 {
			continue
		}
		totals[d.Day[:7]] += d.Downloads
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, Bucket{Label: k, Total: totals[k]})
	}
	return buckets
}

// MonthLabel renders a YYYY-MM key as "Mon 'YY", e.g. "2025-03" -> "Mar '25".
// An unparseable month renders as "?".
func MonthLabel(yyyyMM string) string {
	year, month := yyyyMM, "1"
	if i := strings.IndexByte(yyyyMM, '-'); i >= 0 {
		year, month = yyyyMM[:i], yyyyMM[i+1:]
	}
	name := "?"
	if m, err := strconv.Atoi(month); err == nil && m >= 1 && m <= 12 {
		name = monthNames[m-1]
	}
	if len(year) > 2 {
		year = year[2:]
	} else {
		year = ""
	}
	return name + " '" + year
}

// WeekLabel renders a YYYY-MM-DD day as "Mon 'YY DD", e.g. "Mar '25 03"
func WeekLabel(day string) string {
	if len(day) < 10 {
		return MonthLabel(day)
	}
	return MonthLabel(day[:7]) + " " + day[8:10]
}
