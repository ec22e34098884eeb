package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestIDContext(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)
	FromContext(ctx).Info("traced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-req-123", entry[AttrKeyRequestID])

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestWithAttrsAccumulate(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithAttrs(ctx, "buyer_id", "pmc-1")
	ctx = WithAttrs(ctx)
	FromContext(ctx).Info("bought")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry[AttrKeyRequestID])
	assert.Equal(t, "pmc-1", entry["buyer_id"])
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.NotContains(t, entry, AttrKeyService, "empty base attributes are omitted")
}

func TestConfig(t *testing.T) {
	dev := NewConfig("debug", "text", "svc", "1", "dev")
	assert.True(t, dev.AddSource)
	assert.False(t, dev.IsJSON())
	assert.Equal(t, slog.LevelDebug, dev.LogLevel())

	prod := NewConfig("info", "JSON", "svc", "1", "production")
	assert.False(t, prod.AddSource)
	assert.True(t, prod.IsJSON())

	assert.True(t, SourceEnabled("Development"))
	assert.Equal(t, slog.LevelInfo, Config{Level: "bogus"}.LogLevel())
	assert.Equal(t, slog.LevelWarn, Config{Level: "WARNING"}.LogLevel())
}
