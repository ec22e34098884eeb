package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey struct{}

// InitLogger installs the process-wide slog logger writing to stdout.
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the process-wide slog logger writing to w.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(cfg.baseAttributes())

	slog.SetDefault(slog.New(handler))
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithAttrs returns a context whose FromContext logger also carries args
// (slog key/value pairs). Attributes accumulate across calls; a repeated key
// appears twice rather than being replaced.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(ctxKey{}).([]any)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// WithRequestID tags ctx with a request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithAttrs(ctx, AttrKeyRequestID, requestID)
}

// GetRequestID returns the request id set by WithRequestID, or "".
func GetRequestID(ctx context.Context) string {
	args, _ := ctx.Value(ctxKey{}).([]any)
	for i := len(args) - 2; i >= 0; i -= 2 {
		if k, ok := args[i].(string); ok && k == AttrKeyRequestID {
			id, _ := args[i+1].(string)
			return id
		}
	}
	return ""
}

// FromContext returns the default logger with the context's attributes.
func FromContext(ctx context.Context) *slog.Logger {
	if args, ok := ctx.Value(ctxKey{}).([]any); ok {
		return slog.Default().With(args...)
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { slog.Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Default().Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
