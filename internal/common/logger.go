package common

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

// Log levels
const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	// Level is the minimum level of logs to output
	Level LogLevel
	// Output is where logs are written (defaults to os.Stderr)
	Output io.Writer
	// IncludeSource adds source code location to logs
	IncludeSource bool
	// Component is attached to every record
	Component string
}

// DefaultLoggerConfig returns the default logger configuration.
// Logs go to stderr so command output on stdout stays machine-readable.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         InfoLevel,
		Output:        os.Stderr,
		IncludeSource: false,
		Component:     "sid-client",
	}
}

// ParseLogLevel maps a configuration string onto a LogLevel, defaulting to info
func ParseLogLevel(level string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(level))) {
	case DebugLevel:
		return DebugLevel
	case WarnLevel:
		return WarnLevel
	case ErrorLevel:
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// loggerKeyType is used as context key type
type loggerKeyType struct{}

// loggerKey is the context key for logger
var loggerKey = loggerKeyType{}

// ContextWithLogger adds logger to context
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext gets logger from context
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// NewLogger creates a new structured logger
func NewLogger(config LoggerConfig) *slog.Logger {
	var level slog.Level
	switch config.Level {
	case DebugLevel:
		level = slog.LevelDebug
	case WarnLevel:
		level = slog.LevelWarn
	case ErrorLevel:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: config.IncludeSource,
	}

	logger := slog.New(slog.NewJSONHandler(config.Output, opts))
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}
	return logger
}
