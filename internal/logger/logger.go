// Package logger configures the process-wide slog logger. The interactive
// menu owns stdout, so log output goes to a rotating file instead.
package logger

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultPath is the log file used unless the caller overrides it.
const DefaultPath = "pgprobe.log"

// New creates a file-backed slog logger. With debug enabled the level
// drops to Debug, otherwise Info.
func New(path string, debug bool) *slog.Logger {
	if path == "" {
		path = DefaultPath
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
