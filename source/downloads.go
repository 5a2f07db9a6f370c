package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/qyinm/trendtui/normalize"
	"github.com/qyinm/trendtui/types"
)

const (
	// MaxPeakWeeks caps the ranking built from weekly download totals
	MaxPeakWeeks = 8
	// MaxMonths caps the monthly breakdown; the oldest partial month goes first
	MaxMonths = 12
)

// PackageDownloads fetches the last year of daily npm downloads for a package
// and folds them into weekly and monthly indices.
type PackageDownloads struct {
	client *Client
}

// Compile-time interface check
var _ types.Source = (*PackageDownloads)(nil)

// Fetch issues a single request for the trailing 365 days.
func (p *PackageDownloads) Fetch(ctx context.Context, pkg string) (types.TrendsData, error) {
	key := cacheKey(types.PackageDownloads, pkg)
	if data, ok := p.client.cached(key); ok {
		return data, nil
	}

	resp, err := p.client.get(ctx, p.client.downloadsBaseURL+"/downloads/range/last-year/"+url.PathEscape(pkg))
	if err != nil {
		return types.TrendsData{}, fmt.Errorf("fetch downloads: %w", err)
	}
	if !resp.ok() {
		// the registry answers unknown packages with 404 plus an error body
		if msg := upstreamError(resp.body); resp.statusCode == http.StatusNotFound && msg != "" {
			return types.TrendsData{}, p.notFound(pkg, msg)
		}
		return types.TrendsData{}, &UpstreamHTTPError{Source: "npm registry", StatusCode: resp.statusCode, Reason: resp.reason}
	}

	doc, err := decodeTree(resp.body)
	if err != nil {
		return types.TrendsData{}, fmt.Errorf("decode downloads: %w", err)
	}
	if msg := text(field(doc, "error")); msg != "" {
		return types.TrendsData{}, p.notFound(pkg, msg)
	}

	data, err := buildDownloads(parseDaily(doc))
	if err != nil {
		return types.TrendsData{}, fmt.Errorf("fetch downloads for %q: %w", pkg, err)
	}

	p.client.store(key, data)
	return data, nil
}

func (p *PackageDownloads) notFound(pkg, upstream string) error {
	p.client.logger.Warn("npm package not found", "package", pkg, "upstream", upstream)
	return &NotFoundError{Package: pkg}
}

// upstreamError returns the error field of a JSON body, or "" if there is none
func upstreamError(body []byte) string {
	doc, err := decodeTree(body)
	if err != nil {
		return ""
	}
	return text(field(doc, "error"))
}

// parseDaily reads downloads[] as {day, downloads} pairs
func parseDaily(doc any) []normalize.DailyCount {
	entries := list(field(doc, "downloads"))
	daily := make([]normalize.DailyCount, 0, len(entries))
	for _, e := range entries {
		daily = append(daily, normalize.DailyCount{
			Day:       text(field(e, "day")),
			Downloads: int64(number(field(e, "downloads"))),
		})
	}
	return daily
}

// buildDownloads turns daily counts into the weekly timeline, the peak weeks
// ranking and the monthly breakdown.
func buildDownloads(daily []normalize.DailyCount) (types.TrendsData, error) {
	weeks := normalize.Weekly(daily)
	if len(weeks) == 0 {
		return types.TrendsData{}, ErrEmptyTimeline
	}

	peakWeek := normalize.MaxTotal(weeks)
	timeline := make([]types.TimelinePoint, 0, len(weeks))
	for _, w := range weeks {
		timeline = append(timeline, types.NewTimelinePoint(w.Label, normalize.Scale(w.Total, peakWeek)))
	}

	top := normalize.TopN(weeks, MaxPeakWeeks, func(b normalize.Bucket) int64 { return b.Total })
	ranking := make([]types.RankedItem, 0, len(top))
	for _, w := range top {
		ranking = append(ranking, types.NewRankedItem(normalize.WeekLabel(w.Label), normalize.Scale(w.Total, peakWeek)))
	}

	// Scores are scaled after the cap, so the peak month is the peak of the
	// kept months. A dropped oldest month can change which month reads 100.
	months := normalize.Monthly(daily)
	if len(months) > MaxMonths {
		months = months[len(months)-MaxMonths:]
	}
	monthScores := normalize.ScaleBuckets(months)
	breakdown := make([]types.RankedItem, 0, len(months))
	for i, m := range months {
		breakdown = append(breakdown, types.NewRankedItem(normalize.MonthLabel(m.Label), monthScores[i]))
	}

	return types.NewTrendsData(timeline, ranking, breakdown), nil
}
