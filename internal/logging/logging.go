// Package logging builds the structured loggers used by the server, the live
// channel and the publisher.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Options selects the log level and output format.
type Options struct {
	Level  string // "debug"|"info"|"warn"|"error"
	Format string // "text"|"json"

	// Output defaults to os.Stdout.
	Output io.Writer
}

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

// Formats lists the accepted format names.
var Formats = []string{"text", "json"}

// ParseLevel maps a level name to a slog.Level. Unknown names report false
// and fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// New returns a logger writing JSON, or text when Format is "text".
func New(opts Options) *slog.Logger {
	lvl, _ := ParseLevel(opts.Level)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   false,
		ReplaceAttr: replaceAttrsCompact,
	}

	var h slog.Handler
	if strings.ToLower(opts.Format) == "text" {
		h = slog.NewTextHandler(out, handlerOpts)
	} else {
		h = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(h)
}

func replaceAttrsCompact(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			return slog.Time(slog.TimeKey, t.UTC())
		}
	}
	return a
}
