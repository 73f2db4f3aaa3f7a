package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds defaults loaded from the environment. Flags override them.
type Config struct {
	// URL receives the POST. ENV: FORMPOST_URL
	URL string `env:"FORMPOST_URL"`
	// Timeout bounds the whole request including retries. ENV: FORMPOST_TIMEOUT
	Timeout time.Duration `env:"FORMPOST_TIMEOUT,default=30s"`
	// Retries for transport errors and 5xx responses. ENV: FORMPOST_RETRIES
	Retries int `env:"FORMPOST_RETRIES,default=0"`
	// Backoff before the first retry, doubled after each. ENV: FORMPOST_BACKOFF
	Backoff time.Duration `env:"FORMPOST_BACKOFF,default=500ms"`
	// LogLevel is one of debug, info, warn, error. ENV: FORMPOST_LOG_LEVEL
	LogLevel string `env:"FORMPOST_LOG_LEVEL,default=info"`
}

// loadConfig decodes the environment; defaults are provided via struct tags.
func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.Retries < 0 {
		return Config{}, fmt.Errorf("FORMPOST_RETRIES must not be negative, got %d", cfg.Retries)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
