package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/database"
	"github.com/osse101/FleaMarket_Go/internal/database/sqlite"
)

// setup provisions the configured database: it creates the postgres database when
// missing (dropping it first with -reset) and applies every migration.
func main() {
	reset := flag.Bool("reset", false, "drop and recreate the database before migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		if err := provisionPostgres(ctx, cfg, *reset); err != nil {
			log.Fatal(err)
		}
	case config.DBDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.Path(database.MigrationsDirSQLite))
		if err != nil {
			log.Fatalf("Failed to migrate sqlite: %v", err)
		}
		defer db.Close()
	default:
		fmt.Println("Memory driver selected; nothing to set up.")
		return
	}

	fmt.Println("Migration completed successfully.")
}

func provisionPostgres(ctx context.Context, cfg *config.Config, reset bool) error {
	// 1. Connect to the maintenance database
	adminConn := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, adminConn)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	// 2. Optionally drop
	if reset {
		if _, err := conn.Exec(ctx, "SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()", cfg.DBName); err != nil {
			log.Printf("Warning: failed to terminate connections: %v", err)
		}
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
			return fmt.Errorf("failed to drop database: %w", err)
		}
		fmt.Printf("Database %s dropped.\n", cfg.DBName)
	}

	// 3. Create if missing
	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if !exists {
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		fmt.Printf("Database %s created.\n", cfg.DBName)
	}

	// 4. Migrate
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, database.DefaultMaxIdleTime, database.DefaultMaxLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()
	return database.MigratePostgres(ctx, pool, cfg.Path(database.MigrationsDirPostgres))
}
