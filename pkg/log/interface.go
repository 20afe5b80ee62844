// Package log provides the structured logging interface used by gdlinear.
//
// The Logger interface mirrors log/slog's key-value style so any backend can
// be plugged in. The default backend is zerolog (see NewZerologLogger); tests
// use TestLogger to capture records.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ModelNameKey, "GradientDescentRegressor")
//	logger.Info("Training finished",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.DurationMsKey, 12,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with log/slog.
type Logger interface {
	// Debug logs a debug-level message with optional key-value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key-value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key-value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. If the first field is an error it
	// is attached under ErrAttrKey and the remaining fields are key-value pairs.
	//
	//	logger.Error("Training diverged", err, log.IterationKey, 42)
	Error(msg string, fields ...any)

	// With returns a Logger that adds the given fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at the given level are emitted. Use it
	// to skip computing expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level; values match slog.Level.
type Level int

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

// splitError separates a leading error value from the key-value fields.
func splitError(fields []any) (error, []any) {
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			return err, fields[1:]
		}
	}
	return nil, fields
}
