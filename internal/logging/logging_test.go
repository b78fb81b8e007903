package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("DNSRUN_LOG_LEVEL", "DEBUG")
	t.Setenv("DNSRUN_LOG_FORMAT", "json")

	cfg := FromEnv()
	if cfg.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Level)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("truncated log", LogKey, "stat.gp", StepKey, 400)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "truncated log" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry[LogKey] != "stat.gp" {
		t.Errorf("unexpected log field %v", entry[LogKey])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
