package quota

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// Reservation is a hold on part of a buyer's quota for one purchase.
type Reservation struct {
	mu        sync.Mutex
	ledger    *Ledger
	key       key
	traderID  string
	window    uint64
	remaining int
}

// Remaining returns the units still held.
func (r *Reservation) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Commit records n delivered units as bought and drops them from the hold. Units of a
// hold taken before the trader's last reset are dropped without being counted.
func (r *Reservation) Commit(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf(ErrMsgBadCountFmt, domain.ErrInvalidInput, n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.remaining {
		return fmt.Errorf(ErrMsgOverCommitFmt, domain.ErrInvalidInput, r.remaining, n)
	}

	l := r.ledger
	l.mu.Lock()
	l.dropPendingLocked(r.key, n)
	if l.windows[r.traderID] != r.window {
		l.mu.Unlock()
		r.remaining -= n
		logger.FromContext(ctx).Debug(LogMsgStaleReservation,
			"buyer_id", r.key.buyer, "listing_id", r.key.listing, "count", n)
		return nil
	}
	total := l.recordPurchaseLocked(r.key.buyer, r.key.listing, r.traderID, n)
	l.mu.Unlock()

	r.remaining -= n
	logger.FromContext(ctx).Debug(LogMsgPurchaseRecorded,
		"buyer_id", r.key.buyer, "listing_id", r.key.listing, "count", n, "total", total)
	return nil
}

// Release gives back whatever was not committed. Safe to call more than once.
func (r *Reservation) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remaining == 0 {
		return
	}
	r.ledger.mu.Lock()
	r.ledger.dropPendingLocked(r.key, r.remaining)
	r.ledger.mu.Unlock()
	r.remaining = 0
}

func (l *Ledger) dropPendingLocked(k key, n int) {
	left := l.pending[k] - n
	if left <= 0 {
		delete(l.pending, k)
		return
	}
	l.pending[k] = left
}
