package trade

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/concurrency"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/quota"
)

// Service executes buy and sell calls against traders and the market.
type Service interface {
	Buy(ctx context.Context, req domain.BuyRequest) (*domain.TradeResult, error)
	Sell(ctx context.Context, req domain.SellRequest) (*domain.TradeResult, error)
}

// Inventory is the buyer/seller stash.
type Inventory interface {
	// Place stores an assembly whose first item is the root.
	Place(ctx context.Context, profileID string, items []domain.ItemStack) error
	Find(profileID, itemID string) ([]domain.ItemStack, bool)
	// Remove takes the item and its children out and returns them.
	Remove(ctx context.Context, profileID, itemID string) ([]domain.ItemStack, error)
	ItemIDs(profileID string) map[string]struct{}
}

// Payment moves money and barter goods.
type Payment interface {
	Charge(ctx context.Context, profileID string, cost domain.Cost) error
	Credit(ctx context.Context, profileID string, money domain.Money) error
}

// Market is the offer registry side used by purchases.
type Market interface {
	ByID(id string) (domain.Offer, bool)
	Reserve(id string, n int) error
	CommitReserved(ctx context.Context, id string, n int) error
	ReleaseReserved(id string, n int)
	RemoveTraderListing(ctx context.Context, traderID, tpl, listingID string) error
}

// Traders is the trader assort side used by purchases.
type Traders interface {
	Trader(id string) (domain.TraderBase, bool)
	Listing(traderID, listingID string) (domain.AssortEntry, error)
	TakeStock(traderID, listingID string, n int) error
	ReturnStock(traderID, listingID string, n int)
	IncrementRestriction(traderID, listingID string, n int)
}

// SoldItemSink receives assemblies sold to a reputation trader.
type SoldItemSink interface {
	AddSoldItems(ctx context.Context, traderID string, items []domain.ItemStack, price domain.Money) (string, error)
}

// Quotas enforces per-buyer restrictions.
type Quotas interface {
	Reserve(ctx context.Context, buyerID, listingID, traderID string, count, max int) (*quota.Reservation, error)
	AdjustedLimit(max int, gameEdition string) int
}

// Pricer values sold assemblies for the reputation trader's assort.
type Pricer interface {
	OfferPrice(ctx context.Context, items []domain.ItemStack, currency string, isPackOffer bool) int
}

// Deps groups the collaborators of the service.
type Deps struct {
	Catalog   catalog.Catalog
	Market    Market
	Traders   Traders
	Quotas    Quotas
	Inventory Inventory
	Payment   Payment
	Sink      SoldItemSink
	Pricer    Pricer
	Publisher event.Publisher
}

type service struct {
	Deps
	validate *validator.Validate
	locks    *concurrency.LockManager
	now      func() time.Time
}

// NewService creates the trade service.
func NewService(deps Deps) Service {
	return &service{
		Deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
	}
}
