// Package logger provides structured logging functionality for the
// application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the application's logging based on the configured
// level. It creates a structured JSON logger writing to stdout and sets it
// as the process default, so components without an injected logger still
// log consistently.
//
// An unknown level falls back to info with a warning rather than failing
// startup.
func Setup(logLevel string) *slog.Logger {
	return setup(logLevel, os.Stdout)
}

// SetupCLI configures logging for the command-line tool: human-readable
// text on stderr, so structured output printed to stdout stays clean.
func SetupCLI(logLevel string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(logLevel)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func setup(logLevel string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(logLevel)})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(logLevel string) slog.Level {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", logLevel,
			"default_level", "info")
	}
	return level
}
