package quota

import (
	"context"
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

// Load replaces the in-memory counters with the persisted ones.
func (l *Ledger) Load(ctx context.Context) error {
	if l.repo == nil {
		return nil
	}

	records, err := l.repo.ListQuotas(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgLoadFmt, err)
	}

	l.mu.Lock()
	l.records = make(map[key]*domain.QuotaRecord, len(records))
	for i := range records {
		rec := records[i]
		l.records[key{buyer: rec.BuyerID, listing: rec.ListingID}] = &rec
	}
	l.dirty = false
	l.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgLoaded, "records", len(records))
	return nil
}

// Save writes every counter in one transaction. Nothing is written when no counter changed
// since the last load or save.
func (l *Ledger) Save(ctx context.Context) error {
	if l.repo == nil {
		return nil
	}
	log := logger.FromContext(ctx)

	l.mu.Lock()
	if !l.dirty {
		l.mu.Unlock()
		log.Debug(LogMsgSaveSkipped)
		return nil
	}
	records := l.snapshotLocked()
	l.dirty = false
	l.mu.Unlock()

	if err := l.write(ctx, records); err != nil {
		l.mu.Lock()
		l.dirty = true
		l.mu.Unlock()
		return err
	}

	log.Info(LogMsgSaved, "records", len(records))
	return nil
}

func (l *Ledger) write(ctx context.Context, records []domain.QuotaRecord) error {
	tx, err := l.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFmt, err)
	}
	defer repository.SafeRollback(ctx, tx)

	for _, rec := range records {
		if err := tx.UpsertQuota(ctx, rec); err != nil {
			return fmt.Errorf(ErrMsgUpsertFmt, rec.BuyerID, rec.ListingID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFmt, err)
	}
	return nil
}
