// Package logging configures the process-wide slog logger. Logs go to stderr so stdout stays a clean JSON report.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// ParseLevel converts a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a tint logger writing to w. Colors are enabled only for terminals.
func New(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// NewNamed is New with a level name. An unknown name logs a warning and falls back to info.
func NewNamed(w io.Writer, levelName string) *slog.Logger {
	level, err := ParseLevel(levelName)
	logger := New(w, level)
	if err != nil {
		logger.Warn("falling back to info logging", "err", err)
	}
	return logger
}

// Setup installs a stderr logger as the slog default
func Setup(levelName string) {
	slog.SetDefault(NewNamed(os.Stderr, levelName))
}
