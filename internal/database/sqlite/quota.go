package sqlite

import (
	"context"
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

const (
	queryListQuotas = `
		SELECT buyer_id, listing_id, trader_id, units_purchased, last_purchase_at
		FROM quota_records
		ORDER BY buyer_id, listing_id`

	queryUpsertQuota = `
		INSERT INTO quota_records (buyer_id, listing_id, trader_id, units_purchased, last_purchase_at)
		VALUES (:buyer_id, :listing_id, :trader_id, :units_purchased, :last_purchase_at)
		ON CONFLICT (buyer_id, listing_id) DO UPDATE
		SET trader_id = excluded.trader_id,
		    units_purchased = excluded.units_purchased,
		    last_purchase_at = excluded.last_purchase_at`
)

// QuotaRepository implements repository.Quota on SQLite.
type QuotaRepository struct {
	db *DB
}

// NewQuotaRepository creates a new QuotaRepository
func NewQuotaRepository(db *DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

func (r *QuotaRepository) ListQuotas(ctx context.Context) ([]domain.QuotaRecord, error) {
	var records []domain.QuotaRecord
	if err := r.db.conn.SelectContext(ctx, &records, queryListQuotas); err != nil {
		return nil, fmt.Errorf(ErrMsgListQuotas, err)
	}
	return records, nil
}

func (r *QuotaRepository) BeginTx(ctx context.Context) (repository.QuotaTx, error) {
	tx, err := r.db.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &quotaTx{sqlxTx: tx}, nil
}

type quotaTx struct {
	sqlxTx
}

func (t *quotaTx) UpsertQuota(ctx context.Context, rec domain.QuotaRecord) error {
	if _, err := t.tx.NamedExecContext(ctx, queryUpsertQuota, rec); err != nil {
		return fmt.Errorf(ErrMsgUpsertQuota, rec.BuyerID, rec.ListingID, err)
	}
	return nil
}
