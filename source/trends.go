package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/segmentio/encoding/json"
	"golang.org/x/sync/errgroup"

	"github.com/qyinm/trendtui/normalize"
	"github.com/qyinm/trendtui/types"
)

const (
	// MaxRegions caps the ranking built from interest-by-region
	MaxRegions = 8
	// MaxRelatedQueries caps the breakdown built from related queries
	MaxRelatedQueries = 12
)

// widgetKind names one of the explore widgets and the endpoint serving its data
type widgetKind struct {
	id         string
	endpoint   string
	resolution string
}

var (
	interestOverTime = widgetKind{id: "TIMESERIES", endpoint: "multiline"}
	interestByRegion = widgetKind{id: "GEO_MAP", endpoint: "comparedgeo", resolution: "COUNTRY"}
	relatedQueries   = widgetKind{id: "RELATED_QUERIES", endpoint: "relatedsearches"}
)

// SearchTrends fetches interest over the trailing 12 months from Google Trends.
type SearchTrends struct {
	client *Client
}

// Compile-time interface check
var _ types.Source = (*SearchTrends)(nil)

// Fetch runs the three widget requests concurrently. The first failure
// cancels the others and is returned.
func (s *SearchTrends) Fetch(ctx context.Context, keyword string) (types.TrendsData, error) {
	key := cacheKey(types.SearchTrends, keyword)
	if data, ok := s.client.cached(key); ok {
		return data, nil
	}

	end := s.client.now()
	start := end.AddDate(-1, 0, 0)
	window := start.Format(time.DateOnly) + " " + end.Format(time.DateOnly)

	var timelineDoc, regionDoc, queryDoc any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := s.widget(gctx, keyword, window, interestOverTime)
		timelineDoc = doc
		return err
	})
	g.Go(func() error {
		doc, err := s.widget(gctx, keyword, window, interestByRegion)
		regionDoc = doc
		return err
	})
	g.Go(func() error {
		doc, err := s.widget(gctx, keyword, window, relatedQueries)
		queryDoc = doc
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrRateLimited) {
			s.client.logger.Warn("search trends rate limited", "keyword", keyword, "error", err)
		}
		return types.TrendsData{}, fmt.Errorf("fetch trends: %w", err)
	}

	timeline := parseTimeline(timelineDoc)
	if len(timeline) == 0 {
		return types.TrendsData{}, fmt.Errorf("fetch trends for %q: %w", keyword, ErrEmptyTimeline)
	}
	data := types.NewTrendsData(timeline, parseRegions(regionDoc), parseRelatedQueries(queryDoc))

	s.client.store(key, data)
	return data, nil
}

// widget performs the explore handshake for kind, then fetches its data.
// A missing widget degrades to a nil document.
func (s *SearchTrends) widget(ctx context.Context, keyword, window string, kind widgetKind) (any, error) {
	explore, err := s.explore(ctx, keyword, window)
	if err != nil {
		return nil, err
	}

	var found any
	for _, w := range list(field(explore, "widgets")) {
		if text(field(w, "id")) == kind.id {
			found = w
			break
		}
	}
	if found == nil {
		s.client.logger.Debug("explore response has no widget", "widget", kind.id)
		return nil, nil
	}

	request, _ := field(found, "request").(map[string]any)
	if request == nil {
		request = map[string]any{}
	}
	if kind.resolution != "" {
		request["resolution"] = kind.resolution
	}
	reqJSON, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", kind.id, err)
	}

	q := url.Values{}
	q.Set("hl", s.client.language)
	q.Set("tz", "0")
	q.Set("req", string(reqJSON))
	q.Set("token", text(field(found, "token")))
	return s.getTree(ctx, s.client.trendsBaseURL+"/trends/api/widgetdata/"+kind.endpoint+"?"+q.Encode())
}

func (s *SearchTrends) explore(ctx context.Context, keyword, window string) (any, error) {
	req, err := json.Marshal(map[string]any{
		"comparisonItem": []map[string]any{{"keyword": keyword, "geo": "", "time": window}},
		"category":       0,
		"property":       "",
	})
	if err != nil {
		return nil, fmt.Errorf("encode explore request: %w", err)
	}

	q := url.Values{}
	q.Set("hl", s.client.language)
	q.Set("tz", "0")
	q.Set("req", string(req))
	return s.getTree(ctx, s.client.trendsBaseURL+"/trends/api/explore?"+q.Encode())
}

// getTree fetches and decodes one document. Any body that does not decode
// (HTML error page, plain text, empty) is classified as rate limiting whatever
// the status. A decodable body with a non-2xx status is an UpstreamHTTPError.
func (s *SearchTrends) getTree(ctx context.Context, u string) (any, error) {
	resp, err := s.client.get(ctx, u)
	if err != nil {
		return nil, err
	}

	doc, decodeErr := decodeTree(resp.body)
	if decodeErr != nil {
		s.client.logger.Debug("undecodable trends response",
			"status", resp.statusCode, "error", decodeErr)
		if looksLikeMarkup(resp.body) {
			return nil, rateLimited(resp.body)
		}
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, decodeErr)
	}
	if !resp.ok() {
		return nil, &UpstreamHTTPError{Source: "Google Trends", StatusCode: resp.statusCode, Reason: resp.reason}
	}
	return doc, nil
}

// parseTimeline reads default.timelineData
func parseTimeline(doc any) []types.TimelinePoint {
	points := list(path(doc, "default", "timelineData"))
	timeline := make([]types.TimelinePoint, 0, len(points))
	for _, p := range points {
		label := firstText(p, "formattedAxisTime", "formattedTime")
		timeline = append(timeline, types.NewTimelinePoint(label, score(index(field(p, "value"), 0))))
	}
	return timeline
}

// parseRegions reads default.geoMapData, highest score first, capped at MaxRegions
func parseRegions(doc any) []types.RankedItem {
	entries := list(path(doc, "default", "geoMapData"))
	regions := make([]types.RankedItem, 0, len(entries))
	for _, e := range entries {
		regions = append(regions, types.NewRankedItem(text(field(e, "geoName")), score(index(field(e, "value"), 0))))
	}
	return normalize.TopN(regions, MaxRegions, func(r types.RankedItem) int64 { return int64(r.Value()) })
}

// parseRelatedQueries reads the first ranked list only, in upstream order
func parseRelatedQueries(doc any) []types.RankedItem {
	keywords := normalize.Truncate(list(field(index(path(doc, "default", "rankedList"), 0), "rankedKeyword")), MaxRelatedQueries)
	queries := make([]types.RankedItem, 0, len(keywords))
	for _, k := range keywords {
		queries = append(queries, types.NewRankedItem(text(field(k, "query")), score(field(k, "value"))))
	}
	return queries
}
