package common

import (
	"log/slog"
	"os"
)

// SetupLogger installs the process-wide slog logger. Format is "console"
// for human-readable text or "json" for structured output; anything else
// falls back to text.
func SetupLogger(level slog.Level, format string) error {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
