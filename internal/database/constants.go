package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
	DefaultMaxIdleTime    = 5 * time.Minute
	DefaultMaxLifetime    = time.Hour
)

// Migration directories, relative to the repository root
const (
	MigrationsDirPostgres = "migrations/postgres"
	MigrationsDirSQLite   = "migrations/sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations from %s: %w"
	ErrMsgFailedToMigrate         = "failed to apply migrations: %w"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
