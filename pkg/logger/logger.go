// Package logger defines the structured logging interface used across the
// service. Implementations live in internal/infrastructure/monitoring.
package logger

import "context"

// Fields is a map of structured logging fields.
type Fields map[string]interface{}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message.
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message with its cause.
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application.
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that includes the given fields on every entry.
	WithFields(fields Fields) Logger

	// WithComponent returns a logger scoped to a named component.
	WithComponent(component string) Logger
}
