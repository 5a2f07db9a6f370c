// Package cli contains the trendtui root command
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qyinm/trendtui/config"
	"github.com/qyinm/trendtui/logging"
	"github.com/qyinm/trendtui/source"
	"github.com/qyinm/trendtui/types"
	"github.com/qyinm/trendtui/ui"
)

// defaultDebugLog is where --debug writes when logging.file is unset
const defaultDebugLog = "trendtui-debug.log"

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

type options struct {
	npm     bool
	cfgFile string
	theme   string
	debug   bool
}

// runner starts the dashboard; swapped out in tests
type runner func(m tea.Model) error

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCommand builds the trendtui command
func NewRootCommand() *cobra.Command {
	return newRootCommand(runProgram)
}

func newRootCommand(run runner) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "trendtui [keyword]",
		Short: "Search trends and npm downloads in your terminal",
		Long: `trendtui shows twelve months of popularity data as a line chart, a
ranking and a breakdown table.

Example usage:
  trendtui                     # Google Trends for "bitcoin"
  trendtui golang              # Google Trends for "golang"
  trendtui --npm               # npm downloads for "react"
  trendtui --npm bubbletea     # npm downloads for "bubbletea"`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(opts, args, run)
		},
	}

	cmd.Flags().BoolVar(&opts.npm, "npm", false, "show npm package downloads instead of search trends")
	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/trendtui/config.yaml)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "starting theme: "+strings.Join(ui.ThemeNames(), ", "))
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "write debug logs to "+defaultDebugLog)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// ParseArgs picks the source mode and keyword from the command line
func ParseArgs(npm bool, args []string) (types.SourceMode, string) {
	mode := types.SearchTrends
	if npm {
		mode = types.PackageDownloads
	}
	keyword := mode.DefaultKeyword()
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		keyword = strings.TrimSpace(args[0])
	}
	return mode, keyword
}

func runDashboard(opts *options, args []string, run runner) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	themeIndex, ok := ui.ThemeIndex(cfg.UI.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.UI.Theme, strings.Join(ui.ThemeNames(), ", "))
	}

	logger, closer, err := openLogger(cfg.Logging, opts.debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	mode, keyword := ParseArgs(opts.npm, args)
	logger.Info("starting dashboard", "mode", mode.String(), "keyword", keyword, "theme", cfg.UI.Theme)

	client := source.FromConfig(cfg.Sources, logger)

	model := ui.NewModel(client.For(mode), keyword, mode,
		ui.WithTheme(themeIndex),
		ui.WithAxisLabels(cfg.UI.AxisLabels),
		ui.WithLogger(logger),
	)
	if err := run(model); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// openLogger returns a file logger when configured or when debugging, and a
// discarding one otherwise. The terminal belongs to the dashboard.
func openLogger(cfg config.LoggingConfig, debug bool) (*slog.Logger, io.Closer, error) {
	path, level := cfg.File, cfg.Level
	if debug {
		level = "debug"
		if path == "" {
			path = defaultDebugLog
		}
	}
	return logging.OpenFile(path, level)
}
