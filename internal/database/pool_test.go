package database

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	_ "modernc.org/sqlite"

	"github.com/osse101/FleaMarket_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_BadConnString(t *testing.T) {
	_, err := NewPool("postgres://%zz", 5, time.Minute, time.Minute)
	assert.ErrorContains(t, err, ErrMsgFailedToParseConnString)
}

// The sqlite migrations run without Docker, so the goose wiring is always covered.
func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	defer db.Close()

	dir := filepath.Join("..", "..", MigrationsDirSQLite)
	require.NoError(t, Migrate(ctx, db, goose.DialectSQLite3, dir))
	// Running again is a no-op
	require.NoError(t, Migrate(ctx, db, goose.DialectSQLite3, dir))

	for _, table := range []string{"quota_records", "player_offers"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, goose.DialectSQLite3, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestMigratePostgres(t *testing.T) {
	requireDatabase(t)
	ctx := context.Background()

	pool, err := NewPool(testDBConnString, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	dir := filepath.Join("..", "..", MigrationsDirPostgres)
	require.NoError(t, MigratePostgres(ctx, pool, dir))
	require.NoError(t, MigratePostgres(ctx, pool, dir))

	var n int
	err = pool.QueryRow(ctx, "SELECT count(*) FROM information_schema.tables WHERE table_name IN ('quota_records', 'player_offers')").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The pool is still usable after goose closed its database/sql view of it
	require.NoError(t, pool.Ping(ctx))
}

func TestPool_ConcurrentAccess(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ctx := context.Background()
			conn, err := pool.Acquire(ctx)
			if err != nil {
				t.Errorf("Worker %d failed to acquire connection: %v", id, err)
				return
			}
			defer conn.Release()

			var result int
			if err := conn.QueryRow(ctx, "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("Worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "All connections should be released")
	checker.Check(2)
}
