package source

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrRateLimited means the search-trends upstream answered with something
	// other than JSON, which it does when throttling a client.
	ErrRateLimited = errors.New("upstream rate limited")
	// ErrEmptyTimeline means the upstream answered without any data points
	ErrEmptyTimeline = errors.New("upstream returned no data points")
)

// RateLimitMessage is shown instead of the raw diagnostic for ErrRateLimited
const RateLimitMessage = "Google Trends is rate-limiting requests from this IP.\n\nWait 1–2 minutes and try again."

// EmptyTimelineMessage is shown when an upstream answered without data points
const EmptyTimelineMessage = "No data points were returned for this keyword."

// NotFoundError is returned when the package-downloads upstream reports an
// unknown package.
type NotFoundError struct {
	Package string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Package not found: %q", e.Package)
}

// UpstreamHTTPError is a non-success HTTP status from an upstream
type UpstreamHTTPError struct {
	Source     string
	StatusCode int
	Reason     string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s error: %d %s", e.Source, e.StatusCode, e.Reason)
}

// UserMessage converts a fetch error into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRateLimited) {
		return RateLimitMessage
	}
	if errors.Is(err, ErrEmptyTimeline) {
		return EmptyTimelineMessage
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var he *UpstreamHTTPError
	if errors.As(err, &he) {
		return he.Error()
	}
	return err.Error()
}

// looksLikeMarkup reports whether body starts like an HTML document. Only the
// first significant byte after the anti-XSSI prefix is inspected, so JSON
// whose strings mention tags is never matched.
func looksLikeMarkup(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if rest, ok := bytes.CutPrefix(trimmed, xssiPrefix); ok {
		trimmed = bytes.TrimLeft(rest, ", \r\n\t")
	}
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// rateLimited builds an ErrRateLimited carrying the page title, which is only
// ever logged.
func rateLimited(body []byte) error {
	title := pageTitle(body)
	if title == "" {
		return ErrRateLimited
	}
	return fmt.Errorf("%w: %s", ErrRateLimited, title)
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
