// Package logging builds docfill's zerolog loggers.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // trace, debug, info, warn, error, disabled; default info
	Format string    // json or console; default console
	Output io.Writer // default os.Stderr
}

// New returns a logger tagged with service=docfill.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "docfill").
		Logger()
}

// Nop discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
