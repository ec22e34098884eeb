package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool creates a new PostgreSQL connection pool
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	config.MaxConnLifetime = maxLife
	config.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase)
	return pool, nil
}

// MigratePostgres brings the schema behind pool up to the newest migration in dir.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db, goose.DialectPostgres, dir)
}

// Migrate applies every pending goose migration found in dir.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	provider, err := goose.NewProvider(dialect, db, os.DirFS(dir))
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToLoadMigrations, dir, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToMigrate, err)
	}

	log := logger.FromContext(ctx)
	if len(results) == 0 {
		log.Info(LogMsgMigrationsUpToDate, "dialect", dialect)
		return nil
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}
