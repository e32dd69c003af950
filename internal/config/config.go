package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats accepted by the CLI.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// Config holds the application configuration loaded from the environment.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	LogLevel           string        `mapstructure:"log_level"`
	Output             string        `mapstructure:"output"`
	TimeoutSeconds     int64         `mapstructure:"timeout_seconds"`
	Timeout            time.Duration `mapstructure:"-"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`

	HistoryEnabled         bool          `mapstructure:"history_enabled"`
	HistoryPath            string        `mapstructure:"history_path"`
	HistoryTTLSeconds      int64         `mapstructure:"history_ttl_seconds"`
	HistoryCleanupSeconds  int64         `mapstructure:"history_cleanup_seconds"`
	HistoryTTL             time.Duration `mapstructure:"-"`
	HistoryCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from configs/.env and HTTPY_* environment variables.
func Load() (*Config, error) {
	return LoadFile("configs/.env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored;
// variables already present in the environment win.
func LoadFile(envFile string) (*Config, error) {
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.SetEnvPrefix("httpy")

	v.SetDefault("app_name", "httpy")
	v.SetDefault("log_level", "info")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("timeout_seconds", 0) // no timeout
	v.SetDefault("insecure_skip_verify", false)
	v.SetDefault("history_enabled", true)
	v.SetDefault("history_path", "./data/history.db")
	v.SetDefault("history_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("history_cleanup_seconds", int64(time.Hour/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be zero or positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	cfg.Output = NormalizeOutput(cfg.Output)
	if err := ValidateOutput(cfg.Output); err != nil {
		return nil, err
	}

	if cfg.HistoryTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid history_ttl_seconds (must be positive seconds)")
	}
	if cfg.HistoryCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid history_cleanup_seconds (must be positive seconds)")
	}
	cfg.HistoryTTL = time.Duration(cfg.HistoryTTLSeconds) * time.Second
	cfg.HistoryCleanupInterval = time.Duration(cfg.HistoryCleanupSeconds) * time.Second

	return &cfg, nil
}

// NormalizeOutput trims and lowercases an output format name.
func NormalizeOutput(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// ValidateOutput rejects unknown output formats.
func ValidateOutput(format string) error {
	switch format {
	case OutputJSON, OutputYAML, OutputText:
		return nil
	default:
		return fmt.Errorf("unsupported output %q (want json, yaml or text)", format)
	}
}
