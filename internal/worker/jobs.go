package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/pricing"
)

// Sweeper expires offers whose end time has passed.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) int
}

// SweepJob runs the periodic expiry sweep.
type SweepJob struct {
	Market Sweeper
	now    func() time.Time
}

// NewSweepJob creates a SweepJob
func NewSweepJob(market Sweeper) *SweepJob {
	return &SweepJob{Market: market, now: time.Now}
}

func (j *SweepJob) Name() string { return JobNameSweep }

func (j *SweepJob) Process(ctx context.Context) error {
	j.Market.SweepExpired(ctx, j.now())
	return nil
}

// PriceRefresher swaps in dynamic prices from a feed.
type PriceRefresher interface {
	RefreshFromFeed(ctx context.Context, feed pricing.PriceFeed) (int, error)
	Counts() (static, dynamic int)
}

// PriceRefreshJob pulls the dynamic price feed and announces the new snapshot.
type PriceRefreshJob struct {
	Prices    PriceRefresher
	Feed      pricing.PriceFeed
	Publisher event.Publisher
	now       func() time.Time
}

// NewPriceRefreshJob creates a PriceRefreshJob
func NewPriceRefreshJob(prices PriceRefresher, feed pricing.PriceFeed, publisher event.Publisher) *PriceRefreshJob {
	return &PriceRefreshJob{Prices: prices, Feed: feed, Publisher: publisher, now: time.Now}
}

func (j *PriceRefreshJob) Name() string { return JobNamePriceRefresh }

func (j *PriceRefreshJob) Process(ctx context.Context) error {
	dynamic, err := j.Prices.RefreshFromFeed(ctx, j.Feed)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPriceRefreshFailed, "error", err)
		return err
	}
	static, _ := j.Prices.Counts()
	publish(ctx, j.Publisher, event.NewPricesRefreshedEvent(dynamic, static, j.now()))
	return nil
}

// ArchiveDrainer hands over archived dynamic offers.
type ArchiveDrainer interface {
	DrainExpiredDynamic(ctx context.Context) []domain.Offer
}

// RestockConsumer takes drained dynamic offers.
type RestockConsumer interface {
	Restock(ctx context.Context, offers []domain.Offer) int
}

// DrainJob moves the expired dynamic archive to its consumer.
type DrainJob struct {
	Market   ArchiveDrainer
	Consumer RestockConsumer
}

func (j *DrainJob) Name() string { return JobNameDrain }

func (j *DrainJob) Process(ctx context.Context) error {
	offers := j.Market.DrainExpiredDynamic(ctx)
	if j.Consumer != nil {
		j.Consumer.Restock(ctx, offers)
	}
	return nil
}

// QuotaSaver persists purchase counters.
type QuotaSaver interface {
	Save(ctx context.Context) error
}

// PlayerOfferLister returns the live player offers.
type PlayerOfferLister interface {
	PlayerOffers() []domain.Offer
}

// PlayerOfferSaver persists a full set of player offers.
type PlayerOfferSaver interface {
	SaveOffers(ctx context.Context, offers []domain.Offer) error
}

// SaveJob is the persistence cycle: quota counters and the live player offers.
// Both halves run even when one fails.
type SaveJob struct {
	Quotas   QuotaSaver
	Market   PlayerOfferLister
	Profiles PlayerOfferSaver
}

func (j *SaveJob) Name() string { return JobNameSave }

func (j *SaveJob) Process(ctx context.Context) error {
	var errs []error
	if err := j.Quotas.Save(ctx); err != nil {
		errs = append(errs, fmt.Errorf(ErrMsgSaveQuotasFmt, err))
	}
	offers := j.Market.PlayerOffers()
	if err := j.Profiles.SaveOffers(ctx, offers); err != nil {
		errs = append(errs, fmt.Errorf(ErrMsgSaveOffersFmt, err))
	}

	log := logger.FromContext(ctx)
	if err := errors.Join(errs...); err != nil {
		log.Error(LogMsgSaveFailed, "error", err)
		return err
	}
	log.Debug(LogMsgSaveCompleted, "player_offers", len(offers))
	return nil
}

func publish(ctx context.Context, p event.Publisher, evt event.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
