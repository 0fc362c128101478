// Package logger provides a thin wrapper around zerolog.Logger used by
// twinvault's engine, storage and CLI.
//
// Log entries carry operation names, counts, sizes and durations only.
// Passwords, derived keys, file payloads and the unlocked side are never
// logged.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when the configured level cannot be parsed
const DefaultLevel = zerolog.WarnLevel

// Logger embeds zerolog.Logger so the full zerolog API is available
type Logger struct {
	zerolog.Logger
}

// New returns a JSON logger writing to w at the given level
func New(w io.Writer, level string) *Logger {
	l := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &Logger{l}
}

// NewConsole returns a human-readable logger writing to stderr,
// suitable for an interactive terminal.
func NewConsole(level string) *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return New(w, level)
}

// Nop returns a logger that discards all output
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Named returns a child logger carrying the component field
func (l *Logger) Named(component string) *Logger {
	return &Logger{l.Logger.With().Str("component", component).Logger()}
}

// WithContext attaches the logger to ctx
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger
func FromContext(ctx context.Context) *Logger {
	return &Logger{*zerolog.Ctx(ctx)}
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return lvl
}
