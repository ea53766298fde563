package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
)

// newLogger builds the slog logger selected by the root flags.
func newLogger(w io.Writer, cmd *cli.Command) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cmd.String("log-level"))}
	if strings.EqualFold(cmd.String("log-format"), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
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
