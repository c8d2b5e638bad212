// Package config provides configuration loading using koanf.
// Precedence: TSCTL_* environment variables, then compiled defaults.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/aelexs/timestamp/internal/domain"
)

// EnvPrefix is stripped from environment variable names before mapping
// them onto config keys. TSCTL_LOG_LEVEL becomes log.level.
const EnvPrefix = "TSCTL_"

// Config holds all tsctl configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	Log    LogConfig    `koanf:"log"`
	Layout LayoutConfig `koanf:"layout"`
	Watch  WatchConfig  `koanf:"watch"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "text"
}

// LayoutConfig holds the default render templates.
type LayoutConfig struct {
	DateTime string `koanf:"datetime"`
	Duration string `koanf:"duration"`
}

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Interval time.Duration `koanf:"interval"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint string `koanf:"endpoint"` // Empty disables OTLP export
}

func defaults() *Config {
	return &Config{
		Environment: "local",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Layout: LayoutConfig{
			DateTime: domain.DateTimeLayout,
			Duration: domain.DurationLayout,
		},
		Watch: WatchConfig{
			Interval: domain.DefaultWatchInterval,
		},
	}
}

// Load loads configuration following the precedence:
// 1. TSCTL_* environment variables (highest)
// 2. Compiled defaults (lowest)
//
// Required keys missing in prod cause a startup failure.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")
	cfg := defaults()

	// Delimiter: _ maps to . for nested config
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRequired checks that required configuration is present.
func validateRequired(cfg *Config) error {
	if !cfg.IsProd() {
		return nil
	}

	if cfg.Layout.DateTime == "" {
		return fmt.Errorf("%w: layout.datetime", domain.ErrConfigRequired)
	}
	if cfg.Layout.Duration == "" {
		return fmt.Errorf("%w: layout.duration", domain.ErrConfigRequired)
	}
	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("%w: watch.interval", domain.ErrConfigRequired)
	}

	return nil
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
