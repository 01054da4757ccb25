// Package logging configures the zerolog logger. The TUI owns the terminal,
// so structured logs go to a file instead of stderr.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup opens the log file and returns a logger writing JSON lines to it.
// An empty or unwritable path degrades to a no-op logger; a broken log
// destination must never take the desk down.
func Setup(path, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return zerolog.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return zerolog.Nop()
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}

	return zerolog.New(file).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
