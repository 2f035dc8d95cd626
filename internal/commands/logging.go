package commands

import (
	"io"
	"log/slog"

	"github.com/ruminaider/sso-profiles/internal/config"
)

// SetupLogger builds the process logger, writing to w in the given format,
// and installs it as the slog default. verbose lowers the level to debug.
func SetupLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
