package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
		wantErr  bool
	}{
		{name: "debug", expected: slog.LevelDebug},
		{name: "INFO", expected: slog.LevelInfo},
		{name: "", expected: slog.LevelInfo},
		{name: "warning", expected: slog.LevelWarn},
		{name: "error", expected: slog.LevelError},
		{name: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if level != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, level)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "file", "test_pr1.pl")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=test_pr1.pl") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for a buffer: %q", out)
	}
}

func TestNewNamed(t *testing.T) {
	var buf bytes.Buffer
	logger := NewNamed(&buf, "loud")

	if out := buf.String(); !strings.Contains(out, "falling back to info logging") || !strings.Contains(out, "loud") {
		t.Errorf("expected a fallback warning, got %q", buf.String())
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) || logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected the logger to fall back to info")
	}
}
