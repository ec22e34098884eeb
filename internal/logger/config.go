package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config. Source locations are on for development
// environments only.
func NewConfig(level, format, serviceName, version, environment string) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   SourceEnabled(environment),
	}
}

// SourceEnabled reports whether env logs file:line.
func SourceEnabled(env string) bool {
	switch strings.ToLower(env) {
	case EnvironmentDev, EnvironmentDevelopment:
		return true
	}
	return false
}

// LogLevel maps Level to slog, defaulting to info.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// baseAttributes are stamped on every record. Empty values are left out.
func (c Config) baseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
