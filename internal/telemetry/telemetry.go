// Package telemetry provides the structured logger used across this
// module's ambient stack: a thin wrapper over zerolog configured for
// either human-readable console output or JSON, with a startup banner
// replacing the old ANSI logger's Banner/Section calls.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog's levels under names that read naturally at a
// call site (telemetry.LevelInfo instead of zerolog.InfoLevel).
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the writer: Console for local development, JSON for
// ingestion by a log pipeline.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config configures New.
type Config struct {
	Level   Level
	Format  Format
	Service string
}

// New builds a zerolog.Logger per config: timestamped, with caller info,
// and a "service" field so multiple peerd instances can share one log
// sink without their lines being ambiguous.
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	service := cfg.Service
	if service == "" {
		service = "peerd"
	}

	return zerolog.New(out).With().
		Timestamp().
		Caller().
		Str("service", service).
		Logger()
}

func parseLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogStatus logs a non-OK peer.Status at Warn (the caller decides
// whether to also treat it as fatal); fields carry the operation name
// and any extra context the caller has on hand.
func LogStatus(logger zerolog.Logger, op string, status interface{ OK() bool }, fields map[string]interface{}) {
	if status.OK() {
		return
	}
	event := logger.Warn().Str("op", op)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("non-ok status")
}

// Banner writes a single startup line identifying the running mode and
// version, a structured equivalent a log pipeline can still index.
func Banner(logger zerolog.Logger, mode, version string) {
	logger.Info().
		Str("mode", mode).
		Str("version", version).
		Msg("peerd starting")
}
