// Package logging wires a single package-level zerolog logger used by every
// component, configured once from the ambient CEREMONY_LOG_LEVEL
// environment variable (one of: trace, debug, info, warn, error; defaults
// to info).
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared logger. Every internal package writes through it rather
// than fmt.Println or the stdlib log package; the cmd executables print
// usage errors, fatal errors and check's final verdict with fmt.
var Log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	level := parseLevel(os.Getenv("CEREMONY_LOG_LEVEL"))
	Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
