package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	// APIKey guards /api routes; TrustedProxies may set X-Forwarded-For
	APIKey         string
	TrustedProxies []string

	DBDriver   string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	SQLitePath string

	// RootDir is where the configs/ tree lives
	RootDir        string
	LogDir         string
	DeadLetterPath string
	WorkerPoolSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		ServiceName:    getEnv("SERVICE_NAME", "flea-market"),
		Version:        getEnv("VERSION", "dev"),
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		DBDriver:       getEnv("DB_DRIVER", DBDriverMemory),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "fleamarket"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/fleamarket.db"),
		RootDir:        getEnv("CONFIG_ROOT", "."),
		LogDir:         getEnv("LOG_DIR", ""),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "logs/dead_letter.jsonl"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPortFmt, err)
	}
	cfg.Port = port

	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.WorkerPoolSize, err = getEnvInt("WORKER_POOL_SIZE", 4); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" && cfg.Environment == EnvironmentProduction {
		return nil, fmt.Errorf(ErrMsgMissingEnvFmt, "API_KEY")
	}

	switch cfg.DBDriver {
	case DBDriverPostgres, DBDriverSQLite, DBDriverMemory:
	default:
		return nil, fmt.Errorf(ErrMsgUnknownDriverFmt, cfg.DBDriver)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgInvalidIntFmt, key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// Path resolves a configs/ relative path against RootDir.
func (c *Config) Path(rel string) string {
	return filepath.Join(c.RootDir, rel)
}
