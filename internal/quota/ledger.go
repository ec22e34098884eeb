package quota

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

type key struct {
	buyer   string
	listing string
}

// Ledger counts, per buyer and listing, the units bought in the current resupply window.
// Pending counts belong to purchases that reserved units but have not delivered yet.
// windows numbers each trader's resupply windows so a hold taken before a reset cannot
// count into the next window.
type Ledger struct {
	mu      sync.Mutex
	records map[key]*domain.QuotaRecord
	pending map[key]int
	windows map[string]uint64
	dirty   bool

	repo repository.Quota
	cfg  config.QuotaConfig
	now  func() time.Time
}

// NewLedger creates an empty ledger. repo may be nil when nothing is persisted.
func NewLedger(repo repository.Quota, cfg config.QuotaConfig) *Ledger {
	return &Ledger{
		records: make(map[key]*domain.QuotaRecord),
		pending: make(map[key]int),
		windows: make(map[string]uint64),
		repo:    repo,
		cfg:     cfg,
		now:     time.Now,
	}
}

// RecordPurchase adds count to the buyer's counter for a listing. It does not check the
// limit; callers reject over-limit purchases before delivering.
func (l *Ledger) RecordPurchase(ctx context.Context, buyerID, listingID, traderID string, count int) {
	l.mu.Lock()
	total := l.recordPurchaseLocked(buyerID, listingID, traderID, count)
	l.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgPurchaseRecorded,
		"buyer_id", buyerID, "listing_id", listingID, "count", count, "total", total)
}

func (l *Ledger) recordPurchaseLocked(buyerID, listingID, traderID string, count int) int {
	k := key{buyer: buyerID, listing: listingID}
	rec, ok := l.records[k]
	if !ok {
		rec = &domain.QuotaRecord{BuyerID: buyerID, ListingID: listingID, TraderID: traderID}
		l.records[k] = rec
	}
	rec.UnitsPurchasedThisWindow += count
	rec.LastPurchaseAt = l.now()
	l.dirty = true
	return rec.UnitsPurchasedThisWindow
}

// CurrentCount returns the units bought this window.
func (l *Ledger) CurrentCount(buyerID, listingID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.records[key{buyer: buyerID, listing: listingID}]; ok {
		return rec.UnitsPurchasedThisWindow
	}
	return 0
}

// ResetForTrader zeroes every counter of a trader's listings. Records are kept.
// Returns how many records were touched.
func (l *Ledger) ResetForTrader(ctx context.Context, traderID string) int {
	l.mu.Lock()
	l.windows[traderID]++
	n := 0
	for _, rec := range l.records {
		if rec.TraderID != traderID {
			continue
		}
		rec.UnitsPurchasedThisWindow = 0
		n++
	}
	if n > 0 {
		l.dirty = true
	}
	l.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgTraderReset, "trader_id", traderID, "records", n)
	return n
}

// AdjustedLimit scales a listing's restriction by the buyer's game edition.
func (l *Ledger) AdjustedLimit(max int, gameEdition string) int {
	return int(math.Floor(float64(max) * l.cfg.EditionMultiplier(gameEdition)))
}

// Reserve checks bought + pending + count <= max and, when it holds, sets count aside
// for the caller. A failed check changes nothing.
func (l *Ledger) Reserve(ctx context.Context, buyerID, listingID, traderID string, count, max int) (*Reservation, error) {
	if count <= 0 {
		return nil, fmt.Errorf(ErrMsgBadCountFmt, domain.ErrInvalidInput, count)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := key{buyer: buyerID, listing: listingID}
	bought := 0
	if rec, ok := l.records[k]; ok {
		bought = rec.UnitsPurchasedThisWindow
	}
	pending := l.pending[k]

	if bought+pending+count > max {
		metrics.PurchaseLimitRejections.Inc()
		logger.FromContext(ctx).Warn(LogMsgLimitExceeded,
			"buyer_id", buyerID, "listing_id", listingID, "bought", bought, "pending", pending, "requested", count, "max", max)
		return nil, fmt.Errorf(ErrMsgLimitFmt, domain.ErrPurchaseLimitExceeded, bought, pending, count, max)
	}

	l.pending[k] = pending + count
	return &Reservation{ledger: l, key: k, traderID: traderID, window: l.windows[traderID], remaining: count}, nil
}

// Snapshot returns copies of all records, ordered by buyer then listing.
func (l *Ledger) Snapshot() []domain.QuotaRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() []domain.QuotaRecord {
	out := make([]domain.QuotaRecord, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BuyerID != out[j].BuyerID {
			return out[i].BuyerID < out[j].BuyerID
		}
		return out[i].ListingID < out[j].ListingID
	})
	return out
}
