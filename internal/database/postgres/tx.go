package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxTx adapts pgx.Tx to repository.Tx. Rolling back after commit is not an error.
type pgxTx struct {
	tx pgx.Tx
}

func beginTx(ctx context.Context, db *pgxpool.Pool) (pgxTx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return pgxTx{}, fmt.Errorf(ErrMsgBeginTx, err)
	}
	return pgxTx{tx: tx}, nil
}

func (t pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
