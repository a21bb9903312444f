package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the daemon's own structured logger.
type Options struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // text or json
	Color  bool   `json:"color" mapstructure:"color"`   // colorize text output
}

// New builds a slog.Logger writing to w according to opts.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := parseLevel(opts.Level)
	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		if opts.Color {
			h = NewColorTextHandler(w, ho, true)
		} else {
			h = slog.NewTextHandler(w, ho)
		}
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
