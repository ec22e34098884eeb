package repository

import (
	"context"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Quota defines the interface for purchase quota persistence
type Quota interface {
	ListQuotas(ctx context.Context) ([]domain.QuotaRecord, error)
	BeginTx(ctx context.Context) (QuotaTx, error)
}

// QuotaTx defines the interface for quota transactions
type QuotaTx interface {
	Tx
	UpsertQuota(ctx context.Context, record domain.QuotaRecord) error
}
