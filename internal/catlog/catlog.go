// Package catlog wraps log/slog with the structured fields the engine
// attaches to every log record: a component tag and, where relevant,
// the index revision a record pertains to.
package catlog

import (
	"log/slog"
	"os"
)

// New returns a logger writing structured text records to os.Stderr,
// tagged with component.
func New(component string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("component", component))
}

// WithRevision annotates a logger with the revision a record concerns.
func WithRevision(log *slog.Logger, revisionID int64) *slog.Logger {
	return log.With(slog.Int64("revision", revisionID))
}
