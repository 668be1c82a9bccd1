package logging

import (
	"context"
	"strings"
)

// Level represents log severity
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger defines the interface for logging
// Implementations write to a rotating file, an io.Writer, or nowhere
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info message
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error message
	Error(ctx context.Context, msg string, err error, fields Fields)

	// WithFields returns a logger with additional fields
	WithFields(fields Fields) Logger

	// Close flushes and closes the logger
	Close() error
}

// String returns the upper-case level name written in log entries
func (level Level) String() string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// mergeFields returns base overlaid with extra
func mergeFields(base, extra Fields) Fields {
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// NullLogger discards every entry. The zero value is ready to use.
type NullLogger struct{}

// NewNullLogger returns a logger for runs without logging
func NewNullLogger() NullLogger { return NullLogger{} }

func (NullLogger) Debug(context.Context, string, Fields)        {}
func (NullLogger) Info(context.Context, string, Fields)         {}
func (NullLogger) Warn(context.Context, string, Fields)         {}
func (NullLogger) Error(context.Context, string, error, Fields) {}
func (l NullLogger) WithFields(Fields) Logger                   { return l }
func (NullLogger) Close() error                                 { return nil }
