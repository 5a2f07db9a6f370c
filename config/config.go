package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Sources SourcesConfig `mapstructure:"sources"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// SourcesConfig holds upstream endpoints and HTTP behaviour
type SourcesConfig struct {
	TrendsBaseURL    string        `mapstructure:"trends_base_url"`
	DownloadsBaseURL string        `mapstructure:"downloads_base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Language         string        `mapstructure:"language"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
}

// UIConfig holds dashboard defaults
type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	AxisLabels int    `mapstructure:"axis_labels"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MCPConfig holds the MCP server configuration
type MCPConfig struct {
	Port               string        `mapstructure:"port"`
	AllowedOrigins     []string      `mapstructure:"allowed_origins"`
	Stateless          bool          `mapstructure:"stateless"`
	EnableAdmin        bool          `mapstructure:"enable_admin"`
	RPS                float64       `mapstructure:"rps"`
	Burst              int           `mapstructure:"burst"`
	SessionTimeout     time.Duration `mapstructure:"session_timeout"`
	CacheClearInterval time.Duration `mapstructure:"cache_clear_interval"`
}

// EnvPrefix is prepended to every environment override, e.g. TRENDTUI_UI_THEME
const EnvPrefix = "TRENDTUI"

// Load reads configuration from the given file (optional), the default
// config location if present, and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case defaultPath() != "":
		v.SetConfigFile(defaultPath())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// env values arrive as one comma separated string
	cfg.MCP.AllowedOrigins = parseCSV(strings.Join(cfg.MCP.AllowedOrigins, ","))

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// defaultPath returns $XDG_CONFIG_HOME/trendtui/config.yaml, or "" when the
// user config directory cannot be determined.
func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trendtui", "config.yaml")
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("sources.trends_base_url", "https://trends.google.com")
	v.SetDefault("sources.downloads_base_url", "https://api.npmjs.org")
	v.SetDefault("sources.timeout", "15s")
	v.SetDefault("sources.language", "en-US")
	v.SetDefault("sources.cache_ttl", "10m")

	// UI defaults
	v.SetDefault("ui.theme", "Synthwave")
	v.SetDefault("ui.axis_labels", 7)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	// MCP defaults
	v.SetDefault("mcp.port", "8080")
	v.SetDefault("mcp.allowed_origins", []string{})
	v.SetDefault("mcp.stateless", false)
	v.SetDefault("mcp.enable_admin", false)
	v.SetDefault("mcp.rps", 2.0)
	v.SetDefault("mcp.burst", 5)
	v.SetDefault("mcp.session_timeout", "15m")
	v.SetDefault("mcp.cache_clear_interval", "30m")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sources.TrendsBaseURL) == "" {
		return fmt.Errorf("sources.trends_base_url is required")
	}
	if strings.TrimSpace(c.Sources.DownloadsBaseURL) == "" {
		return fmt.Errorf("sources.downloads_base_url is required")
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("sources.timeout must be positive")
	}
	if c.Sources.CacheTTL < 0 {
		return fmt.Errorf("sources.cache_ttl must not be negative")
	}
	if c.UI.AxisLabels < 2 {
		return fmt.Errorf("ui.axis_labels must be at least 2")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}

	if c.MCP.RPS <= 0 {
		return fmt.Errorf("mcp.rps must be positive")
	}
	if c.MCP.Burst < 1 {
		return fmt.Errorf("mcp.burst must be at least 1")
	}

	return nil
}

func parseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
