package trade

import (
	"context"
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/quota"
)

// StockSource is where purchased units come from. A source is built per request and
// holds that request's reservation.
type StockSource interface {
	Kind() domain.SellerKind
	TraderID() string
	ListingID() string
	// Items returns a copy of the listing's assembly.
	Items() []domain.ItemStack
	UnitCost() domain.Cost
	Restriction() (max int, ok bool)
	// Reserve claims quota and stock together. On failure nothing is held.
	Reserve(ctx context.Context, buyerID string, count int) error
	// Commit turns n reserved units into a delivered sale.
	Commit(ctx context.Context, buyerID string, n int) error
	// Release gives back n reserved units that were not delivered.
	Release(ctx context.Context, buyerID string, n int)
}

// resolveSource picks the stock source for a request. Market offers owned by a trader
// are served from the trader's assort.
func (s *service) resolveSource(req domain.BuyRequest) (StockSource, error) {
	if !req.IsRagfair() {
		return s.traderSourceFor(req.TraderID, req.ListingID, req.GameEdition)
	}

	offer, ok := s.Market.ByID(req.ListingID)
	if !ok {
		return nil, fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrOfferNotFound, req.ListingID)
	}
	switch offer.SellerKind {
	case domain.SellerTrader:
		return s.traderSourceFor(offer.SellerID, offer.RootItemID, req.GameEdition)
	case domain.SellerDynamicNpc, domain.SellerPlayer:
		src := &ragfairSource{market: s.Market, quotas: s.Quotas, offer: offer}
		if max, ok := restriction(offer.Root()); ok {
			src.max, src.restricted = s.Quotas.AdjustedLimit(max, req.GameEdition), true
		}
		return src, nil
	}
	return nil, fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, offer.SellerKind)
}

func (s *service) traderSourceFor(traderID, listingID, edition string) (StockSource, error) {
	base, ok := s.Traders.Trader(traderID)
	if !ok {
		return nil, fmt.Errorf(ErrMsgTraderFmt, domain.ErrNotFound, traderID)
	}
	entry, err := s.Traders.Listing(traderID, listingID)
	if err != nil {
		return nil, err
	}

	if base.IsReputationTrader {
		return &reputationTraderSource{traders: s.Traders, market: s.Market, traderID: traderID, entry: entry}, nil
	}
	src := &traderSource{traders: s.Traders, quotas: s.Quotas, traderID: traderID, entry: entry}
	if max, ok := restriction(&entry.Items[0]); ok {
		src.max, src.restricted = s.Quotas.AdjustedLimit(max, edition), true
	}
	return src, nil
}

func restriction(root *domain.ItemStack) (int, bool) {
	if root == nil || !root.HasBuyRestriction() {
		return 0, false
	}
	return *root.Upd.BuyRestrictionMax, true
}

// ragfairSource sells from a dynamic or player offer in the registry.
type ragfairSource struct {
	market     Market
	quotas     Quotas
	offer      domain.Offer
	max        int
	restricted bool
	res        *quota.Reservation
}

func (r *ragfairSource) Kind() domain.SellerKind   { return r.offer.SellerKind }
func (r *ragfairSource) TraderID() string          { return domain.RagfairTraderID }
func (r *ragfairSource) ListingID() string         { return r.offer.ID }
func (r *ragfairSource) Items() []domain.ItemStack { return domain.CloneItems(r.offer.Items) }
func (r *ragfairSource) UnitCost() domain.Cost     { return r.offer.UnitCost() }
func (r *ragfairSource) Restriction() (int, bool)  { return r.max, r.restricted }

func (r *ragfairSource) Reserve(ctx context.Context, buyerID string, count int) error {
	if r.restricted {
		res, err := r.quotas.Reserve(ctx, buyerID, r.offer.ID, domain.RagfairTraderID, count, r.max)
		if err != nil {
			return err
		}
		r.res = res
	}
	if err := r.market.Reserve(r.offer.ID, count); err != nil {
		if r.res != nil {
			r.res.Release()
		}
		return err
	}
	return nil
}

func (r *ragfairSource) Commit(ctx context.Context, buyerID string, n int) error {
	if err := r.market.CommitReserved(ctx, r.offer.ID, n); err != nil {
		return err
	}
	if r.res != nil {
		return r.res.Commit(ctx, n)
	}
	return nil
}

func (r *ragfairSource) Release(ctx context.Context, buyerID string, n int) {
	r.market.ReleaseReserved(r.offer.ID, n)
	if r.res != nil {
		r.res.Release()
	}
}

// traderSource sells from a standard trader assort. Stock is claimed through the
// assort's compare-and-swap counter.
type traderSource struct {
	traders    Traders
	quotas     Quotas
	traderID   string
	entry      domain.AssortEntry
	max        int
	restricted bool
	res        *quota.Reservation
}

func (t *traderSource) Kind() domain.SellerKind   { return domain.SellerTrader }
func (t *traderSource) TraderID() string          { return t.traderID }
func (t *traderSource) ListingID() string         { return t.entry.ListingID() }
func (t *traderSource) Items() []domain.ItemStack { return domain.CloneItems(t.entry.Items) }
func (t *traderSource) UnitCost() domain.Cost     { return t.entry.UnitCost() }
func (t *traderSource) Restriction() (int, bool)  { return t.max, t.restricted }

func (t *traderSource) Reserve(ctx context.Context, buyerID string, count int) error {
	if t.restricted {
		res, err := t.quotas.Reserve(ctx, buyerID, t.ListingID(), t.traderID, count, t.max)
		if err != nil {
			return err
		}
		t.res = res
	}
	if err := t.traders.TakeStock(t.traderID, t.ListingID(), count); err != nil {
		if t.res != nil {
			t.res.Release()
		}
		return err
	}
	return nil
}

func (t *traderSource) Commit(ctx context.Context, buyerID string, n int) error {
	if !t.restricted {
		return nil
	}
	t.traders.IncrementRestriction(t.traderID, t.ListingID(), n)
	return t.res.Commit(ctx, n)
}

func (t *traderSource) Release(ctx context.Context, buyerID string, n int) {
	t.traders.ReturnStock(t.traderID, t.ListingID(), n)
	if t.res != nil {
		t.res.Release()
	}
}

// reputationTraderSource sells from the reputation trader's assort, which is mirrored on
// the market. Any sale pulls the mirrored offer off the market entirely.
type reputationTraderSource struct {
	traders  Traders
	market   Market
	traderID string
	entry    domain.AssortEntry
}

func (f *reputationTraderSource) Kind() domain.SellerKind   { return domain.SellerTrader }
func (f *reputationTraderSource) TraderID() string          { return f.traderID }
func (f *reputationTraderSource) ListingID() string         { return f.entry.ListingID() }
func (f *reputationTraderSource) Items() []domain.ItemStack { return domain.CloneItems(f.entry.Items) }
func (f *reputationTraderSource) UnitCost() domain.Cost     { return f.entry.UnitCost() }
func (f *reputationTraderSource) Restriction() (int, bool)  { return 0, false }

func (f *reputationTraderSource) Reserve(ctx context.Context, buyerID string, count int) error {
	return f.traders.TakeStock(f.traderID, f.ListingID(), count)
}

func (f *reputationTraderSource) Commit(ctx context.Context, buyerID string, n int) error {
	tpl := f.entry.Items[0].TemplateID
	if err := f.market.RemoveTraderListing(ctx, f.traderID, tpl, f.ListingID()); err != nil {
		logger.FromContext(ctx).Debug(LogMsgListingNotSynced, "trader_id", f.traderID, "listing_id", f.ListingID(), "error", err)
	}
	return nil
}

func (f *reputationTraderSource) Release(ctx context.Context, buyerID string, n int) {
	f.traders.ReturnStock(f.traderID, f.ListingID(), n)
}
