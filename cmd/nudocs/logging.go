package main

import (
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// setupLogging installs a tint handler on w. debug overrides level.
func setupLogging(w io.Writer, level string, debug bool) {
	lvl := parseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}

	h := tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		AddSource:  debug,
		TimeFormat: "15:04:05.000",
	})

	logger := slog.New(h)
	slog.SetDefault(logger)

	log.SetFlags(0)
	log.SetOutput(
		slog.NewLogLogger(
			slog.Default().Handler(),
			slog.LevelInfo,
		).Writer(),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
