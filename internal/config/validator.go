package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_DRIVER",
}

// RequiredPostgresEnvVars must additionally be set when DB_DRIVER=postgres
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf(ErrMsgSchemaVersionMissing, ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf(ErrMsgSchemaVersionFmt, ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := RequiredEnvVars
	if os.Getenv("DB_DRIVER") == DBDriverPostgres {
		required = append(append([]string{}, required...), RequiredPostgresEnvVars...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf(ErrMsgMissingEnvFmt, strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_DRIVER") == DBDriverPostgres && os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("DB_DRIVER") == DBDriverMemory && os.Getenv("ENVIRONMENT") == "prod" {
		warnings = append(warnings, "DB_DRIVER=memory in prod - quotas and player offers will not survive a restart")
	}

	return warnings, nil
}
