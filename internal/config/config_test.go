package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "SERVICE_NAME", "VERSION",
	"DB_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_MAX_CONNS",
	"SQLITE_PATH", "CONFIG_ROOT", "DEAD_LETTER_PATH", "WORKER_POOL_SIZE",
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, DBDriverMemory, cfg.DBDriver)
		assert.Equal(t, 10, cfg.DBMaxConns)
		assert.Equal(t, 4, cfg.WorkerPoolSize)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/market.db")
		t.Setenv("WORKER_POOL_SIZE", "8")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, DBDriverSQLite, cfg.DBDriver)
		assert.Equal(t, "/tmp/market.db", cfg.SQLitePath)
		assert.Equal(t, 8, cfg.WorkerPoolSize)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT value")
	})

	t.Run("returns error for invalid integer setting", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "lots")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_MAX_CONNS")
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_DRIVER", "oracle")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
	assert.Equal(t, filepath.Join("root", ConfigPathEconomy), (&Config{RootDir: "root"}).Path(ConfigPathEconomy))
}
