package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	requestIDKey = "request_id"
	envLogLevel  = "LOG_LEVEL"
)

var defaultLogger = New(os.Stdout, os.Getenv(envLogLevel))

// New builds a JSON logger writing to w at the named level (debug, info, warn, error).
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: false,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type contextKey struct{}

var loggerKey = &contextKey{}

// FromContext returns the logger from context, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}

// WithContext returns a new context that carries the given logger.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithRequestID returns a new context whose logger includes the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	l := FromContext(ctx).With(requestIDKey, id)
	return WithContext(ctx, l)
}

// Error logs with error level. args are alternating key-value pairs (e.g. "error", err).
func Error(ctx context.Context, message string, args ...any) {
	FromContext(ctx).ErrorContext(ctx, message, args...)
}

// Info logs with info level. args are alternating key-value pairs.
func Info(ctx context.Context, message string, args ...any) {
	FromContext(ctx).InfoContext(ctx, message, args...)
}

// Debug logs with debug level. args are alternating key-value pairs.
func Debug(ctx context.Context, message string, args ...any) {
	FromContext(ctx).DebugContext(ctx, message, args...)
}

// Warn logs with warn level. args are alternating key-value pairs.
func Warn(ctx context.Context, message string, args ...any) {
	FromContext(ctx).WarnContext(ctx, message, args...)
}
