package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/trendtui/config"
	"github.com/qyinm/trendtui/logging"
	"github.com/qyinm/trendtui/mcpsrv"
	"github.com/qyinm/trendtui/source"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("TRENDTUI_CONFIG"))
	if err == nil {
		err = cfg.Validate()
	}
	logger := logging.New(os.Stderr, "info")
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger = logging.New(os.Stderr, cfg.Logging.Level)

	// hosting platforms inject PORT
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.MCP.Port = port
	}

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
					logger.Debug("cache cleared")
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.MCP.Port),
		Handler:           mcpsrv.NewMux(server, cfg.MCP),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("trendtui-mcp listening", "addr", httpServer.Addr, "admin", cfg.MCP.EnableAdmin)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
