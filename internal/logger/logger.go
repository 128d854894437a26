// Package logger configures the process-wide zerolog logger. Packages log
// through zerolog's global log.Logger or the helpers here; both write to
// the same output once Init has run.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service is attached to every line so aggregated logs can be filtered.
const Service = "college-order-service"

// Init sets the global level and output. Unknown levels fall back to info.
// Pretty selects human readable console output for local runs.
func Init(level string, pretty bool) {
	initTo(os.Stderr, level, pretty)
}

func initTo(w io.Writer, level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", Service).Logger()
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// Info starts an info level message on the global logger.
func Info() *zerolog.Event {
	return log.Logger.Info()
}

// Warn starts a warn level message on the global logger.
func Warn() *zerolog.Event {
	return log.Logger.Warn()
}

// Error starts an error level message on the global logger.
func Error() *zerolog.Event {
	return log.Logger.Error()
}

// WithRequestID returns ctx carrying a logger tagged with the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := log.Logger.With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// ForDraft returns the request logger of ctx tagged with a college and
// draft id.
func ForDraft(ctx context.Context, college, draftID string) zerolog.Logger {
	return FromContext(ctx).With().Str("college", college).Str("draft_id", draftID).Logger()
}
