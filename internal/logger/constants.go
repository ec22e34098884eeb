package logger

// Level names accepted in LOG_LEVEL
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environments that turn on source locations.
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
