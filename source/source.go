package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/qyinm/trendtui/config"
	"github.com/qyinm/trendtui/types"
)

const (
	defaultTrendsBaseURL    = "https://trends.google.com"
	defaultDownloadsBaseURL = "https://api.npmjs.org"
	defaultLanguage         = "en-US"
	defaultCacheTTL         = 10 * time.Minute
	maxBodyBytes            = 8 << 20
	userAgent               = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client holds the HTTP client and result cache shared by both adapters.
type Client struct {
	client           *http.Client
	trendsBaseURL    string
	downloadsBaseURL string
	language         string
	cacheTTL         time.Duration
	now              func() time.Time
	logger           *slog.Logger
	cache            map[string]cachedResult
	mu               sync.Mutex
}

type cachedResult struct {
	value     types.TrendsData
	timestamp time.Time
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout of the HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithTrendsBaseURL points the search-trends adapter at another host
func WithTrendsBaseURL(u string) Option {
	return func(c *Client) { c.trendsBaseURL = strings.TrimRight(u, "/") }
}

// WithDownloadsBaseURL points the package-downloads adapter at another host
func WithDownloadsBaseURL(u string) Option {
	return func(c *Client) { c.downloadsBaseURL = strings.TrimRight(u, "/") }
}

// WithLanguage sets the hl parameter sent to the search-trends upstream
func WithLanguage(hl string) Option {
	return func(c *Client) { c.language = hl }
}

// WithCacheTTL sets how long a successful result is served from memory.
// Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) { c.cacheTTL = d }
}

// WithClock overrides time.Now, used to anchor the trailing 12-month window
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new Client with configured HTTP client and empty cache.
func New(opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
		trendsBaseURL:    defaultTrendsBaseURL,
		downloadsBaseURL: defaultDownloadsBaseURL,
		language:         defaultLanguage,
		cacheTTL:         defaultCacheTTL,
		now:              time.Now,
		logger:           slog.New(slog.DiscardHandler),
		cache:            make(map[string]cachedResult),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig creates a Client from the sources section of the configuration
func FromConfig(cfg config.SourcesConfig, logger *slog.Logger) *Client {
	return New(
		WithTrendsBaseURL(cfg.TrendsBaseURL),
		WithDownloadsBaseURL(cfg.DownloadsBaseURL),
		WithTimeout(cfg.Timeout),
		WithLanguage(cfg.Language),
		WithCacheTTL(cfg.CacheTTL),
		WithLogger(logger),
	)
}

// For returns the adapter for the given mode.
func (c *Client) For(mode types.SourceMode) types.Source {
	switch mode {
	case types.PackageDownloads:
		return &PackageDownloads{client: c}
	default:
		return &SearchTrends{client: c}
	}
}

// ClearCache clears the in-memory cache.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cachedResult)
}

func cacheKey(mode types.SourceMode, keyword string) string {
	return mode.String() + "\x00" + keyword
}

func (c *Client) cached(key string) (types.TrendsData, bool) {
	if c.cacheTTL <= 0 {
		return types.TrendsData{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok {
		return types.TrendsData{}, false
	}
	if c.now().Sub(entry.timestamp) > c.cacheTTL {
		delete(c.cache, key)
		return types.TrendsData{}, false
	}
	return entry.value, true
}

func (c *Client) store(key string, data types.TrendsData) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	c.cache[key] = cachedResult{value: data, timestamp: c.now()}
	c.mu.Unlock()
}

// response is a fully read upstream reply
type response struct {
	statusCode int
	reason     string
	body       []byte
}

func (r response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// get issues a single GET and reads the body regardless of status, so callers
// can classify error pages themselves.
func (c *Client) get(ctx context.Context, url string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	c.logger.Debug("upstream request", "url", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("read body: %w", err)
	}

	return response{
		statusCode: resp.StatusCode,
		reason:     reasonPhrase(resp),
		body:       body,
	}, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
