package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

// QuotaRepository stores per-buyer purchase counters in quota_records.
type QuotaRepository struct {
	db *pgxpool.Pool
}

// NewQuotaRepository creates a new QuotaRepository
func NewQuotaRepository(db *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// ListQuotas returns every stored counter ordered by buyer then listing.
func (r *QuotaRepository) ListQuotas(ctx context.Context) ([]domain.QuotaRecord, error) {
	rows, err := r.db.Query(ctx, queryListQuotas)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListQuotas, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.QuotaRecord])
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListQuotas, err)
	}
	return records, nil
}

// BeginTx starts a transaction for a batch of upserts.
func (r *QuotaRepository) BeginTx(ctx context.Context) (repository.QuotaTx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &quotaTx{pgxTx: tx}, nil
}

type quotaTx struct {
	pgxTx
}

func (t *quotaTx) UpsertQuota(ctx context.Context, rec domain.QuotaRecord) error {
	_, err := t.tx.Exec(ctx, queryUpsertQuota,
		rec.BuyerID, rec.ListingID, rec.TraderID, rec.UnitsPurchasedThisWindow, rec.LastPurchaseAt)
	if err != nil {
		return fmt.Errorf(ErrMsgUpsertQuota, rec.BuyerID, rec.ListingID, err)
	}
	return nil
}
