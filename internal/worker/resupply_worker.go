package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// TraderStock is the trader side of a resupply.
type TraderStock interface {
	Traders() []domain.TraderBase
	Restock(ctx context.Context, traderID string) error
	Offers(traderID string, now time.Time, fallback time.Duration) ([]domain.Offer, error)
}

// QuotaResetter zeroes a trader's purchase counters.
type QuotaResetter interface {
	ResetForTrader(ctx context.Context, traderID string) int
}

// TraderMarket swaps a trader's listings on the flea market.
type TraderMarket interface {
	ReplaceTraderOffers(ctx context.Context, traderID string, offers []domain.Offer) int
}

// Valuer prices offer costs in roubles.
type Valuer interface {
	ToRoubles(ctx context.Context, m domain.Money) int
	ResolvedPrice(ctx context.Context, tpl string) int
}

// ResupplyWorker runs one timer per trader. Each firing resets the trader's quotas,
// restocks it, and relists its assortment on the flea market, then schedules the next
// cycle from the trader's own interval.
type ResupplyWorker struct {
	BaseWorker
	traders   TraderStock
	quotas    QuotaResetter
	market    TraderMarket
	prices    Valuer
	publisher event.Publisher
	fallback  time.Duration
	now       func() time.Time
}

// NewResupplyWorker creates a new ResupplyWorker. fallback is used for traders without
// their own resupply interval.
func NewResupplyWorker(traders TraderStock, quotas QuotaResetter, market TraderMarket, prices Valuer, publisher event.Publisher, fallback time.Duration) *ResupplyWorker {
	w := &ResupplyWorker{
		traders:   traders,
		quotas:    quotas,
		market:    market,
		prices:    prices,
		publisher: publisher,
		fallback:  fallback,
		now:       time.Now,
	}
	w.init()
	return w
}

// Start lists every trader's current stock and schedules the first resupply. Quotas are
// left alone so a restart does not open a fresh window.
func (w *ResupplyWorker) Start(ctx context.Context) error {
	for _, base := range w.traders.Traders() {
		if _, err := w.list(ctx, base); err != nil {
			return err
		}
		w.scheduleNext(base)
	}
	return nil
}

func (w *ResupplyWorker) scheduleNext(base domain.TraderBase) {
	interval := base.ResupplyInterval(w.fallback)
	timer := time.AfterFunc(interval, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}
		if !w.begin() {
			return
		}
		ctx := context.Background()
		if _, err := w.Resupply(ctx, base.ID); err != nil {
			logger.FromContext(ctx).Error(LogMsgResupplyFailed, "trader_id", base.ID, "error", err)
		}
		w.wg.Done()
		w.scheduleNext(base)
	})
	if w.registerTimer(base.ID, timer) {
		logger.FromContext(context.Background()).Debug(LogMsgResupplyScheduled,
			"trader_id", base.ID, "next_resupply_at", w.now().Add(interval))
	}
}

// Resupply performs one cycle for a trader.
func (w *ResupplyWorker) Resupply(ctx context.Context, traderID string) (domain.TraderResuppliedPayload, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResupplyStarting, "trader_id", traderID)

	base, ok := w.findTrader(traderID)
	if !ok {
		return domain.TraderResuppliedPayload{}, fmt.Errorf(ErrMsgRestockFmt, traderID, domain.ErrNotFound)
	}

	// 1. New window
	reset := w.quotas.ResetForTrader(ctx, traderID)

	// 2. Full stock
	if err := w.traders.Restock(ctx, traderID); err != nil {
		return domain.TraderResuppliedPayload{}, fmt.Errorf(ErrMsgRestockFmt, traderID, err)
	}

	// 3. Relist
	listed, err := w.list(ctx, base)
	if err != nil {
		return domain.TraderResuppliedPayload{}, err
	}

	now := w.now()
	payload := domain.TraderResuppliedPayload{
		TraderID:     traderID,
		QuotasReset:  reset,
		OffersListed: listed,
		NextResupply: now.Add(base.ResupplyInterval(w.fallback)).Unix(),
		Timestamp:    now.Unix(),
	}
	publish(ctx, w.publisher, event.NewTraderResuppliedEvent(payload))

	log.Info(LogMsgResupplyCompleted, "trader_id", traderID, "quotas_reset", reset, "offers_listed", listed)
	return payload, nil
}

func (w *ResupplyWorker) findTrader(id string) (domain.TraderBase, bool) {
	for _, base := range w.traders.Traders() {
		if base.ID == id {
			return base, true
		}
	}
	return domain.TraderBase{}, false
}

// list replaces the trader's flea market offers with its current assortment.
func (w *ResupplyWorker) list(ctx context.Context, base domain.TraderBase) (int, error) {
	if !base.ListOnRagfair {
		return 0, nil
	}
	offers, err := w.traders.Offers(base.ID, w.now(), w.fallback)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgTraderOffers, base.ID, err)
	}
	for i := range offers {
		offers[i].SummaryCost = w.summaryCost(ctx, offers[i])
	}
	return w.market.ReplaceTraderOffers(ctx, base.ID, offers), nil
}

// summaryCost is the rouble value of one unit: the price converted, or the barter
// requirements at their resolved prices.
func (w *ResupplyWorker) summaryCost(ctx context.Context, o domain.Offer) int {
	if o.Price != nil {
		return w.prices.ToRoubles(ctx, *o.Price)
	}
	total := 0
	for _, req := range o.Barter {
		total += w.prices.ResolvedPrice(ctx, req.TemplateID) * req.Count
	}
	return total
}

// Shutdown cancels pending resupplies and waits for running ones.
func (w *ResupplyWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx)
}
