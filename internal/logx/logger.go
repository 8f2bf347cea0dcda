// Package logx wraps log/slog with the small set of constructors the
// batch driver and CLI need. Modeled on the retrieved pack's own Logger
// wrapper (hupe1980/vecgo), which wraps slog rather than pulling in a
// third-party logging library.
package logx

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so call sites can pass one handle around
// regardless of which backend is configured.
type Logger struct {
	*slog.Logger
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger that writes JSON-formatted records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// Noop creates a Logger that discards all output. Used as the batch
// driver's default so that library callers never see unsolicited logs.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}
