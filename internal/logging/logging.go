// Package logging configures the structured logger used across dnsrun.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the log output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Field keys shared by every component.
const (
	RunDirKey      = "run_dir"
	SnapshotKey    = "snapshot"
	StepKey        = "step"
	OperationIDKey = "operation_id"
	LogKey         = "log"
)

// Config holds the logging configuration.
type Config struct {
	// Level is one of debug, info, warn, error. Default: info.
	Level string
	// Format is text or json. Default: text.
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the defaults for an interactive CLI.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv applies DNSRUN_LOG_LEVEL and DNSRUN_LOG_FORMAT over the defaults.
func FromEnv() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("DNSRUN_LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}
	if format := os.Getenv("DNSRUN_LOG_FORMAT"); format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}
	return cfg
}

// New creates a logger from cfg.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
