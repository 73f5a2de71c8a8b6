// Package log provides structured logging for dataprep commands.
//
// The Logger interface is a minimal, slog-compatible surface so that the
// loading, scaling and splitting code can log without depending on a concrete
// backend. The default implementation forwards to log/slog configured by
// SetupLogger; warnings raised through pkg/errors are routed to zerolog by
// InstallWarningSink.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("dataset.loader")
//	logger.Info("Dataset loaded",
//	    log.SamplesKey, 150,
//	    log.FeaturesKey, 4,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The With method returns a child logger carrying pre-populated fields, which
// is how components attach their name and input path once.
type Logger interface {
	// Debug logs a debug-level message with optional key-value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key-value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key-value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. If the first field is an error it is
	// attached under ErrAttrKey so the stack trace handler can pick it up.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
