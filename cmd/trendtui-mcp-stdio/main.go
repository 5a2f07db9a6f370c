package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/trendtui/config"
	"github.com/qyinm/trendtui/logging"
	"github.com/qyinm/trendtui/mcpsrv"
	"github.com/qyinm/trendtui/source"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; logs go to stderr
	cfg, err := config.Load(os.Getenv("TRENDTUI_CONFIG"))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logging.New(os.Stderr, "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.Logging.Level)

	client := source.FromConfig(cfg.Sources, logger)
	server := mcpsrv.NewServer(client, version, &mcpsrv.ServerOptions{
		EnableAdmin: cfg.MCP.EnableAdmin,
		AxisLabels:  cfg.UI.AxisLabels,
		Logger:      logger,
	})

	if cfg.MCP.CacheClearInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.MCP.CacheClearInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					client.ClearCache()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("stdio mcp server failed", "error", err)
		os.Exit(1)
	}
}
