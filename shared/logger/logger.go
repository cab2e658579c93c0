package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// Safe defaults for tests and tools; main calls Initialize with config values.
	Initialize("info", false)
}

// Initialize sets up the global logger writing to stdout.
func Initialize(level string, useJSON bool) {
	InitializeWithWriter(os.Stdout, level, useJSON)
}

// InitializeWithWriter sets up the global logger with the specified output,
// level and format.
func InitializeWithWriter(w io.Writer, level string, useJSON bool) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	if useJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Component returns a child logger tagged with the component name.
func Component(name string) *slog.Logger {
	return Log.With("component", name)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
