package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	unsetForTest(t, "ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_PostgresNeedsCredentials(t *testing.T) {
	unsetForTest(t, RequiredPostgresEnvVars...)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_DRIVER", DBDriverPostgres)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestValidateEnv_SQLiteNeedsNoCredentials(t *testing.T) {
	unsetForTest(t, RequiredPostgresEnvVars...)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_DRIVER", DBDriverSQLite)

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_MemoryInProd(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_DRIVER", DBDriverMemory)
	t.Setenv("ENVIRONMENT", "prod")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "memory")
}
