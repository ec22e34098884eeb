package trader

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// listing is one assort entry plus its live counters. The stock counter is the ownership
// token for the listing's units: whoever wins the compare-and-swap owns the units.
type listing struct {
	entry     domain.AssortEntry
	baseline  int64
	unlimited bool
	absorbed  bool
	stock     atomic.Int64
	bought    atomic.Int64
}

func newListing(entry domain.AssortEntry, absorbed bool) *listing {
	l := &listing{entry: entry.Clone(), absorbed: absorbed}
	root := &l.entry.Items[0]
	l.baseline = int64(root.StackCount())
	if root.Upd != nil {
		l.unlimited = root.Upd.UnlimitedCount
		if root.Upd.BuyRestrictionCurrent != nil {
			l.bought.Store(int64(*root.Upd.BuyRestrictionCurrent))
		}
	}
	l.stock.Store(l.baseline)
	return l
}

func (l *listing) take(n int64) bool {
	if l.unlimited {
		return true
	}
	for {
		cur := l.stock.Load()
		if cur < n {
			return false
		}
		if l.stock.CompareAndSwap(cur, cur-n) {
			return true
		}
	}
}

// give puts n units back, never above the baseline. A restock that ran while the units
// were out has already refilled the listing.
func (l *listing) give(n int64) {
	for {
		cur := l.stock.Load()
		next := min(cur+n, l.baseline)
		if next <= cur || l.stock.CompareAndSwap(cur, next) {
			return
		}
	}
}

// view returns the entry with live counts.
func (l *listing) view() domain.AssortEntry {
	out := l.entry.Clone()
	root := &out.Items[0]
	if !l.unlimited {
		root.SetStackCount(int(l.stock.Load()))
	}
	if root.Upd != nil && root.Upd.BuyRestrictionMax != nil {
		root.Upd.BuyRestrictionCurrent = domain.IntPtr(int(l.bought.Load()))
	}
	return out
}

type state struct {
	base     domain.TraderBase
	mu       sync.RWMutex
	listings map[string]*listing
	order    []string
}

func (s *state) get(id string) (*listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	return l, ok
}

// Store holds every trader and its assort.
type Store struct {
	mu      sync.RWMutex
	traders map[string]*state
	order   []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{traders: make(map[string]*state)}
}

// Register adds a trader with its baseline assort.
func (s *Store) Register(base domain.TraderBase, assort []domain.AssortEntry) error {
	st := &state{base: base, listings: make(map[string]*listing, len(assort))}
	for i := range assort {
		if err := validateEntry(base.ID, i, &assort[i]); err != nil {
			return err
		}
		id := assort[i].ListingID()
		if _, dup := st.listings[id]; dup {
			return fmt.Errorf(ErrMsgBadListingFmt, domain.ErrInvalidInput, base.ID, i, ErrMsgDuplicateListID)
		}
		st.listings[id] = newListing(assort[i], false)
		st.order = append(st.order, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.traders[base.ID]; dup {
		return fmt.Errorf(ErrMsgDuplicateFmt, domain.ErrInvalidInput, base.ID)
	}
	s.traders[base.ID] = st
	s.order = append(s.order, base.ID)
	return nil
}

func validateEntry(traderID string, idx int, e *domain.AssortEntry) error {
	if len(e.Items) == 0 {
		return fmt.Errorf(ErrMsgBadListingFmt, domain.ErrInvalidInput, traderID, idx, ErrMsgNoItems)
	}
	if (e.Price == nil) == (len(e.Barter) == 0) {
		return fmt.Errorf(ErrMsgBadListingFmt, domain.ErrInvalidInput, traderID, idx, ErrMsgNoCost)
	}
	return nil
}

func (s *Store) trader(id string) (*state, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.traders[id]
	if !ok {
		return nil, fmt.Errorf(ErrMsgTraderFmt, domain.ErrNotFound, id)
	}
	return st, nil
}

func (s *Store) listing(traderID, listingID string) (*listing, error) {
	st, err := s.trader(traderID)
	if err != nil {
		return nil, err
	}
	l, ok := st.get(listingID)
	if !ok {
		return nil, fmt.Errorf(ErrMsgListingFmt, domain.ErrNotFound, traderID, listingID)
	}
	return l, nil
}

// Trader returns a trader's base description.
func (s *Store) Trader(id string) (domain.TraderBase, bool) {
	st, err := s.trader(id)
	if err != nil {
		return domain.TraderBase{}, false
	}
	return st.base, true
}

// Traders returns every trader in registration order.
func (s *Store) Traders() []domain.TraderBase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TraderBase, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.traders[id].base)
	}
	return out
}

// BuyProfiles returns what every trader buys.
func (s *Store) BuyProfiles() []domain.BuyProfile {
	traders := s.Traders()
	out := make([]domain.BuyProfile, 0, len(traders))
	for _, t := range traders {
		if len(t.BuyCategories) > 0 {
			out = append(out, t.BuyProfile())
		}
	}
	return out
}

// Assort returns a trader's listings with live stock and restriction counts.
func (s *Store) Assort(traderID string) ([]domain.AssortEntry, error) {
	st, err := s.trader(traderID)
	if err != nil {
		return nil, err
	}
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]domain.AssortEntry, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.listings[id].view())
	}
	return out, nil
}

// Listing returns one listing with live counts.
func (s *Store) Listing(traderID, listingID string) (domain.AssortEntry, error) {
	l, err := s.listing(traderID, listingID)
	if err != nil {
		return domain.AssortEntry{}, err
	}
	return l.view(), nil
}

// TakeStock claims n units of a listing. Fails with domain.ErrOutOfStock and takes nothing
// when fewer than n are left. Unlimited listings never run out.
func (s *Store) TakeStock(traderID, listingID string, n int) error {
	if n <= 0 {
		return fmt.Errorf(ErrMsgBadCountFmt, domain.ErrInvalidInput, n)
	}
	l, err := s.listing(traderID, listingID)
	if err != nil {
		return err
	}
	if !l.take(int64(n)) {
		return fmt.Errorf(ErrMsgStockFmt, domain.ErrOutOfStock, listingID, l.stock.Load(), n)
	}
	return nil
}

// ReturnStock gives back units claimed by TakeStock that were never delivered. Stock never
// rises above the listing's baseline.
func (s *Store) ReturnStock(traderID, listingID string, n int) {
	if n <= 0 {
		return
	}
	l, err := s.listing(traderID, listingID)
	if err != nil || l.unlimited {
		return
	}
	l.give(int64(n))
}

// IncrementRestriction adds delivered units to the listing's restriction counter.
func (s *Store) IncrementRestriction(traderID, listingID string, n int) {
	l, err := s.listing(traderID, listingID)
	if err != nil || n <= 0 {
		return
	}
	l.bought.Add(int64(n))
}

// AddSoldItems lists a sold assembly in a reputation trader's assort until the next restock.
// Returns the new listing id.
func (s *Store) AddSoldItems(ctx context.Context, traderID string, items []domain.ItemStack, price domain.Money) (string, error) {
	st, err := s.trader(traderID)
	if err != nil {
		return "", err
	}
	if !st.base.IsReputationTrader {
		return "", fmt.Errorf(ErrMsgTraderFmt, domain.ErrInvalidInput, traderID+" "+ErrMsgNotReputation)
	}
	if len(items) == 0 {
		return "", fmt.Errorf(ErrMsgBadListingFmt, domain.ErrInvalidInput, traderID, 0, ErrMsgNoItems)
	}

	assembly := remapIDs(items)
	assembly[0].ParentID = domain.RootParentStash
	assembly[0].SlotID = domain.RootParentStash
	entry := domain.AssortEntry{Items: assembly, Price: &price}

	st.mu.Lock()
	id := entry.ListingID()
	st.listings[id] = newListing(entry, true)
	st.order = append(st.order, id)
	st.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgSoldItemsAdded, "trader_id", traderID, "listing_id", id, "tpl", assembly[0].TemplateID)
	return id, nil
}

// Restock restores the baseline assort: stock and restriction counters reset and
// absorbed sold items are dropped.
func (s *Store) Restock(ctx context.Context, traderID string) error {
	st, err := s.trader(traderID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	kept := st.order[:0]
	for _, id := range st.order {
		l := st.listings[id]
		if l.absorbed {
			delete(st.listings, id)
			continue
		}
		l.stock.Store(l.baseline)
		l.bought.Store(0)
		kept = append(kept, id)
	}
	st.order = kept
	st.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgTraderRestocked, "trader_id", traderID, "listings", len(kept))
	return nil
}

// Offers projects a trader's in-stock listings into market offers that end at the
// trader's next resupply.
func (s *Store) Offers(traderID string, now time.Time, fallback time.Duration) ([]domain.Offer, error) {
	st, err := s.trader(traderID)
	if err != nil {
		return nil, err
	}
	if fallback <= 0 {
		fallback = DefaultOfferLifetime * time.Second
	}
	ends := now.Add(st.base.ResupplyInterval(fallback))

	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]domain.Offer, 0, len(st.order))
	for _, id := range st.order {
		l := st.listings[id]
		if !l.unlimited && l.stock.Load() <= 0 {
			continue
		}
		entry := l.view()
		out = append(out, domain.Offer{
			ID:                   utils.NewItemID(),
			SellerKind:           domain.SellerTrader,
			SellerID:             traderID,
			RootItemID:           id,
			Items:                entry.Items,
			Price:                entry.Price,
			Barter:               entry.Barter,
			LoyaltyLevelRequired: entry.LoyaltyLevel,
			ListedAt:             now,
			EndsAt:               ends,
		})
	}
	return out, nil
}

// remapIDs copies an assembly giving every item a fresh id and keeping parent links.
func remapIDs(items []domain.ItemStack) []domain.ItemStack {
	out := domain.CloneItems(items)
	ids := make(map[string]string, len(out))
	for i := range out {
		fresh := utils.NewItemID()
		ids[out[i].ID] = fresh
		out[i].ID = fresh
	}
	for i := range out {
		if p, ok := ids[out[i].ParentID]; ok {
			out[i].ParentID = p
		}
	}
	return out
}
