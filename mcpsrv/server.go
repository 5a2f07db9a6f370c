package mcpsrv

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/trendtui/format"
	"github.com/qyinm/trendtui/mcpsrv/dto"
	"github.com/qyinm/trendtui/source"
	"github.com/qyinm/trendtui/types"
)

const maxKeywordLength = 100

type trendsGetArgs struct {
	Keyword string `json:"keyword,omitempty" jsonschema:"Search term, defaults to bitcoin"`
}

type downloadsGetArgs struct {
	Package string `json:"package,omitempty" jsonschema:"npm package name, defaults to react"`
}

type trendsOutput struct {
	Item dto.Trends `json:"item"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

type ServerOptions struct {
	EnableAdmin bool
	AxisLabels  int
	Logger      *slog.Logger
}

func (o *ServerOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// SourceProvider hands out the adapter for a source mode. *source.Client
// implements it.
type SourceProvider interface {
	For(mode types.SourceMode) types.Source
}

type cacheClearSource interface {
	ClearCache()
}

func NewServer(sources SourceProvider, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	opts = &ServerOptions{EnableAdmin: opts.EnableAdmin, AxisLabels: opts.AxisLabels, Logger: opts.Logger}
	if opts.AxisLabels < 2 {
		opts.AxisLabels = format.DefaultAxisLabels
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "trendtui", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trends_get",
		Description: "Get twelve months of search interest for a keyword: weekly 0-100 timeline, top regions and related queries.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args trendsGetArgs) (*mcp.CallToolResult, trendsOutput, error) {
		return fetchHandler(ctx, sources, types.SearchTrends, args.Keyword, opts)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "downloads_get",
		Description: "Get last-year npm downloads for a package: weekly 0-100 index, peak weeks and monthly breakdown.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args downloadsGetArgs) (*mcp.CallToolResult, trendsOutput, error) {
		return fetchHandler(ctx, sources, types.PackageDownloads, args.Package, opts)
	})

	if opts.EnableAdmin {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the fetch cache (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, sources)
		})
	}

	return server
}

func fetchHandler(ctx context.Context, sources SourceProvider, mode types.SourceMode, keyword string, opts *ServerOptions) (*mcp.CallToolResult, trendsOutput, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = mode.DefaultKeyword()
	}
	if len(keyword) > maxKeywordLength {
		return errorToolResult("keyword is too long"), trendsOutput{}, nil
	}

	data, err := sources.For(mode).Fetch(ctx, keyword)
	if err == nil && len(data.Timeline()) == 0 {
		err = source.ErrEmptyTimeline
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, trendsOutput{}, err
		}
		opts.logger().Warn("tool fetch failed", "mode", mode.String(), "keyword", keyword, "error", err)
		return errorToolResult(source.UserMessage(err)), trendsOutput{}, nil
	}

	return nil, trendsOutput{Item: dto.FromTrendsData(mode, keyword, data, opts.AxisLabels)}, nil
}

func cacheClearHandler(_ context.Context, _ *mcp.CallToolRequest, sources SourceProvider) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := sources.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	return nil, cacheClearOutput{Status: "ok"}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
