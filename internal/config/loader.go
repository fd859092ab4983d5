package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TENNIS_CONFIG is set
//  3. env (prefix TENNIS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TENNIS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: TENNIS_EXPORT_DIR, TENNIS_MIN_DURATION_SECONDS, ...
	// Map env keys like TENNIS_EXPORT_DIR -> export_dir (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("TENNIS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tennis_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ExportDir == "" {
		return fmt.Errorf("%w: export_dir must not be empty", ErrInvalidConfig)
	}
	if c.StatePath == "" {
		return fmt.Errorf("%w: state_path must not be empty", ErrInvalidConfig)
	}
	if c.MinDurationSeconds < 0 {
		return fmt.Errorf("%w: min_duration_seconds must not be negative", ErrInvalidConfig)
	}
	if c.ProcessedHistorySize <= 0 {
		return fmt.Errorf("%w: processed_history_size must be positive", ErrInvalidConfig)
	}
	if c.ZoneLower <= 0 || c.ZoneUpper <= c.ZoneLower || c.ZoneUpper >= 1 {
		return fmt.Errorf("%w: zone bounds must satisfy 0 < lower < upper < 1", ErrInvalidConfig)
	}
	if c.ReportLatencyMinMS <= 0 || c.ReportLatencyMaxMS <= c.ReportLatencyMinMS {
		return fmt.Errorf("%w: report latency bounds must satisfy 0 < min < max", ErrInvalidConfig)
	}
	if c.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
