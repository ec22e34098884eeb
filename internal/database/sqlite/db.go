// Package sqlite provides the embedded single-file backend selected with DB_DRIVER=sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/FleaMarket_Go/internal/database"
)

const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"

const (
	ErrMsgOpen          = "open sqlite %s: %w"
	ErrMsgMigrate       = "migrate sqlite: %w"
	ErrMsgBeginTx       = "begin sqlite transaction: %w"
	ErrMsgListQuotas    = "list quota records: %w"
	ErrMsgUpsertQuota   = "upsert quota %s/%s: %w"
	ErrMsgListOffers    = "list player offers: %w"
	ErrMsgDecodeOffer   = "decode player offer %s: %w"
	ErrMsgEncodeOffer   = "encode player offer %s: %w"
	ErrMsgDeleteOffers  = "clear player offers: %w"
	ErrMsgInsertOffer   = "insert player offer %s: %w"
	ErrMsgListRatings   = "list seller ratings: %w"
	ErrMsgDeleteRatings = "clear seller ratings: %w"
	ErrMsgInsertRating  = "insert seller rating %s: %w"
)

// DB wraps a SQLite connection holding the market state tables.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and applies the migrations in migrationsDir.
func Open(ctx context.Context, path, migrationsDir string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpen, path, err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	conn.SetMaxOpenConns(1)

	if err := database.Migrate(ctx, conn.DB, goose.DialectSQLite3, migrationsDir); err != nil {
		conn.Close()
		return nil, fmt.Errorf(ErrMsgMigrate, err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// sqlxTx adapts *sqlx.Tx to repository.Tx. Rolling back after commit is not an error.
type sqlxTx struct {
	tx *sqlx.Tx
}

func (db *DB) beginTx(ctx context.Context) (sqlxTx, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return sqlxTx{}, fmt.Errorf(ErrMsgBeginTx, err)
	}
	return sqlxTx{tx: tx}, nil
}

func (t sqlxTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t sqlxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
