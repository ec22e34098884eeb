package config

const (
	// Configuration file paths, relative to CONFIG_DIR's parent
	ConfigPathEconomy       = "configs/economy/ragfair.json"
	ConfigPathCatalogItems  = "configs/catalog/items.json"
	ConfigPathPresets       = "configs/catalog/presets.json"
	ConfigPathTradersDir    = "configs/traders/"
	ConfigPathPriceFeed     = "configs/economy/prices.json"
	ConfigPathSchemaItems   = "configs/schemas/items.schema.json"
	ConfigPathSchemaPresets = "configs/schemas/presets.schema.json"
	ConfigPathSchemaTrader  = "configs/schemas/trader.schema.json"
	ConfigPathSchemaPrices  = "configs/schemas/prices.schema.json"
)

// EnvironmentProduction requires an API key
const EnvironmentProduction = "production"

// Database drivers selectable through DB_DRIVER
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DBDriverMemory   = "memory"
)

// Error messages
const (
	ErrMsgInvalidPortFmt       = "invalid PORT value: %w"
	ErrMsgInvalidIntFmt        = "invalid %s value: %w"
	ErrMsgUnknownDriverFmt     = "unknown DB_DRIVER %q (want postgres, sqlite or memory)"
	ErrMsgReadEconomyFmt       = "failed to read economy config %s: %w"
	ErrMsgParseEconomyFmt      = "failed to parse economy config %s: %w"
	ErrMsgInvalidEconomyFmt    = "invalid economy config %s: %w"
	ErrMsgSchemaVersionMissing = "ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)"
	ErrMsgSchemaVersionFmt     = "ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated"
	ErrMsgMissingEnvFmt        = "missing required environment variables: %s"
)
