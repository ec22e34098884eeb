package ragfair

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
)

// SellerProfiles is the profile-side view of player sellers.
type SellerProfiles interface {
	// AdjustRating adds delta to the seller's rating. A negative delta clears the rising flag.
	AdjustRating(ctx context.Context, profileID string, delta float64) error
	// RemoveOffer drops the offer from the seller's own offer list.
	// Returns domain.ErrOfferNotFound when the profile does not hold it.
	RemoveOffer(ctx context.Context, profileID, offerID string) error
}

// Mailer delivers returned items to a profile.
type Mailer interface {
	ReturnItems(ctx context.Context, profileID string, items []domain.ItemStack) error
}

// PlayerOfferSource supplies persisted player offers at startup.
type PlayerOfferSource interface {
	AllPlayerOffers(ctx context.Context) ([]domain.Offer, error)
}

// Registry is the authoritative set of active offers.
// Offers are stored by pointer and never handed out; every read returns a clone.
type Registry struct {
	mu         sync.RWMutex
	offers     map[string]*domain.Offer
	byTemplate map[string]map[string]struct{}
	reserved   map[string]int
	retired    *lru.Cache[string, struct{}]
	archive    *lru.Cache[string, domain.Offer]

	loadMu       sync.Mutex
	playerLoaded bool

	catalog   catalog.Catalog
	profiles  SellerProfiles
	mailer    Mailer
	publisher event.Publisher
	cfg       config.RagfairConfig

	now func() time.Time
}

// NewRegistry creates an empty registry. profiles, mailer and publisher may be nil in tests
// that never expire player offers.
func NewRegistry(cat catalog.Catalog, profiles SellerProfiles, mailer Mailer, publisher event.Publisher, cfg config.RagfairConfig) *Registry {
	size := cfg.ExpiredDynamicArchiveSize
	if size <= 0 {
		size = DefaultArchiveSize
	}
	archive, err := lru.New[string, domain.Offer](size)
	if err != nil {
		// only fails for size <= 0
		panic(err)
	}
	tombstones := cfg.RetiredOfferIDCacheSize
	if tombstones <= 0 {
		tombstones = DefaultRetiredSize
	}
	retired, err := lru.New[string, struct{}](tombstones)
	if err != nil {
		panic(err)
	}

	return &Registry{
		offers:     make(map[string]*domain.Offer),
		byTemplate: make(map[string]map[string]struct{}),
		reserved:   make(map[string]int),
		retired:    retired,
		archive:    archive,
		catalog:    cat,
		profiles:   profiles,
		mailer:     mailer,
		publisher:  publisher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Add lists an offer. A known or retired id is ignored.
func (r *Registry) Add(ctx context.Context, offer domain.Offer) error {
	if len(offer.Items) == 0 {
		return fmt.Errorf(ErrMsgMalformedFmt, domain.ErrInvalidInput, ErrMsgMalformedOffer, offer.ID)
	}
	if !offer.SellerKind.Valid() {
		return fmt.Errorf(ErrMsgUnknownSellerFmt, domain.ErrInvalidInput, offer.SellerKind)
	}

	r.mu.Lock()
	added := r.addLocked(offer)
	r.mu.Unlock()

	log := logger.FromContext(ctx)
	if !added {
		log.Debug(LogMsgDuplicateOffer, "offer_id", offer.ID)
		return nil
	}
	log.Debug(LogMsgOfferAdded, "offer_id", offer.ID, "seller_kind", offer.SellerKind, "tpl", offer.RootTemplateID())
	return nil
}

// AddMany lists every offer, skipping malformed ones. Returns how many were added.
func (r *Registry) AddMany(ctx context.Context, offers []domain.Offer) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for i := range offers {
		if len(offers[i].Items) == 0 || !offers[i].SellerKind.Valid() {
			logger.FromContext(ctx).Warn(LogMsgSkippedMalformed, "offer_id", offers[i].ID)
			continue
		}
		if r.addLocked(offers[i]) {
			added++
		}
	}
	return added
}

func (r *Registry) addLocked(offer domain.Offer) bool {
	if _, exists := r.offers[offer.ID]; exists {
		return false
	}
	if r.retired.Contains(offer.ID) {
		return false
	}

	o := offer.Clone()
	if o.RootItemID == "" {
		o.RootItemID = o.Items[0].ID
	}
	r.offers[o.ID] = &o

	tpl := o.RootTemplateID()
	if r.byTemplate[tpl] == nil {
		r.byTemplate[tpl] = make(map[string]struct{})
	}
	r.byTemplate[tpl][o.ID] = struct{}{}

	metrics.OffersActive.Set(float64(len(r.offers)))
	return true
}

// removeLocked drops an offer from both indices and retires its id.
func (r *Registry) removeLocked(id string) {
	o, ok := r.offers[id]
	if !ok {
		return
	}
	tpl := o.RootTemplateID()
	delete(r.byTemplate[tpl], id)
	if len(r.byTemplate[tpl]) == 0 {
		delete(r.byTemplate, tpl)
	}
	delete(r.offers, id)
	delete(r.reserved, id)
	r.retired.Add(id, struct{}{})

	metrics.OffersActive.Set(float64(len(r.offers)))
}

// ByID returns a copy of the offer.
func (r *Registry) ByID(id string) (domain.Offer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.offers[id]
	if !ok {
		return domain.Offer{}, false
	}
	return o.Clone(), true
}

// ByTemplate returns copies of every offer whose root is tpl, oldest listing first.
func (r *Registry) ByTemplate(tpl string) []domain.Offer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byTemplate[tpl]
	out := make([]domain.Offer, 0, len(ids))
	for id := range ids {
		out = append(out, r.offers[id].Clone())
	}
	sortOffers(out)
	return out
}

// PlayerOffers returns copies of every player-owned offer.
func (r *Registry) PlayerOffers() []domain.Offer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Offer
	for _, o := range r.offers {
		if o.SellerKind == domain.SellerPlayer {
			out = append(out, o.Clone())
		}
	}
	sortOffers(out)
	return out
}

// Count returns the number of active offers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.offers)
}

// Retired reports whether id belonged to an offer that has left the registry. Only the
// most recent retirements are remembered; offer ids are fresh ObjectIDs, so an id old
// enough to be forgotten is never listed again.
func (r *Registry) Retired(id string) bool {
	return r.retired.Contains(id)
}

// RetiredCount returns how many retired ids are remembered.
func (r *Registry) RetiredCount() int {
	return r.retired.Len()
}

// RemoveStack takes amount units off the offer's root stack. When nothing is left the
// offer leaves the registry: dynamic offers go to the expired archive, everything else is
// dropped so a sold-out listing is never visible.
func (r *Registry) RemoveStack(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf(ErrMsgBadAmountFmt, domain.ErrInvalidInput, amount)
	}

	r.mu.Lock()
	fx, err := r.removeStackLocked(id, amount)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.apply(ctx, fx)
	return nil
}

func (r *Registry) removeStackLocked(id string, amount int) (*expiry, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, fmt.Errorf(ErrMsgOfferFmt, domain.ErrOfferNotFound, id)
	}

	remaining := o.Stock() - amount
	if remaining > 0 {
		o.Items[0].SetStackCount(remaining)
		return nil, nil
	}

	o.Items[0].SetStackCount(0)
	if o.SellerKind == domain.SellerDynamicNpc {
		return r.expireLocked(o, r.now())
	}
	snapshot := o.Clone()
	r.removeLocked(id)
	return &expiry{action: actionSoldOut, offer: snapshot}, nil
}

// RemoveTraderListing takes the market offer projected from a trader listing off the
// market, whatever stock it had left. tpl is the listing's root template.
func (r *Registry) RemoveTraderListing(ctx context.Context, traderID, tpl, listingID string) error {
	r.mu.Lock()
	id := ""
	for offerID := range r.byTemplate[tpl] {
		o := r.offers[offerID]
		if o.SellerKind == domain.SellerTrader && o.SellerID == traderID && o.RootItemID == listingID {
			id = offerID
			break
		}
	}
	if id == "" {
		r.mu.Unlock()
		return fmt.Errorf(ErrMsgListingFmt, domain.ErrOfferNotFound, traderID, listingID)
	}
	snapshot := r.offers[id].Clone()
	r.removeLocked(id)
	r.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgTraderListingPulled, "offer_id", id, "trader_id", traderID, "listing_id", listingID, "stock", snapshot.Stock())
	return nil
}

// Expire applies the expiry rules to one offer regardless of its end time.
func (r *Registry) Expire(ctx context.Context, id string) error {
	r.mu.Lock()
	o, ok := r.offers[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf(ErrMsgOfferFmt, domain.ErrOfferNotFound, id)
	}
	fx, err := r.expireLocked(o, r.now())
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.apply(ctx, fx)
	return nil
}

// SweepExpired expires every offer whose end time is at or before now. Offers with units
// reserved by an in-flight purchase wait for the next sweep. Returns how many offers left
// the registry.
func (r *Registry) SweepExpired(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	var effects []*expiry
	for _, o := range r.offers {
		if !o.Expired(now) || r.reserved[o.ID] > 0 {
			continue
		}
		if fx, err := r.expireLocked(o, now); err == nil {
			effects = append(effects, fx)
		}
	}
	r.mu.Unlock()

	removed := 0
	for _, fx := range effects {
		if fx.action != actionSkip {
			removed++
		}
		r.apply(ctx, fx)
	}

	logger.FromContext(ctx).Info(LogMsgSweepCompleted, "removed", removed)
	return removed
}

// ExpiredDynamic returns copies of the archived dynamic offers, oldest first.
func (r *Registry) ExpiredDynamic() []domain.Offer {
	values := r.archive.Values()
	out := make([]domain.Offer, len(values))
	for i := range values {
		out[i] = values[i].Clone()
	}
	return out
}

// ExpiredDynamicCount returns the archive size.
func (r *Registry) ExpiredDynamicCount() int {
	return r.archive.Len()
}

// DrainExpiredDynamic returns the archived offers and clears the archive.
func (r *Registry) DrainExpiredDynamic(ctx context.Context) []domain.Offer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.archive.Values()
	r.archive.Purge()

	logger.FromContext(ctx).Info(LogMsgArchiveDrained, "offers", len(out))
	return out
}

// LoadPlayerOffers imports persisted player offers once. Later calls are no-ops after a
// successful load; a failed load may be retried.
func (r *Registry) LoadPlayerOffers(ctx context.Context, source PlayerOfferSource) (int, error) {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	if r.playerLoaded {
		return 0, nil
	}

	offers, err := source.AllPlayerOffers(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgLoadPlayerFmt, err)
	}

	added := r.AddMany(ctx, offers)
	r.playerLoaded = true

	logger.FromContext(ctx).Info(LogMsgPlayerOffersLoaded, "offers", added)
	return added, nil
}

// ReplaceTraderOffers swaps a trader's whole listing set for a fresh one.
// Returns how many new offers were listed.
func (r *Registry) ReplaceTraderOffers(ctx context.Context, traderID string, offers []domain.Offer) int {
	r.mu.Lock()
	for id, o := range r.offers {
		if o.SellerKind == domain.SellerTrader && o.SellerID == traderID {
			r.removeLocked(id)
		}
	}
	added := 0
	for i := range offers {
		if len(offers[i].Items) == 0 {
			continue
		}
		if r.addLocked(offers[i]) {
			added++
		}
	}
	r.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgTraderOffersSwapped, "trader_id", traderID, "offers", added)
	return added
}

func sortOffers(offers []domain.Offer) {
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].ListedAt.Equal(offers[j].ListedAt) {
			return offers[i].ListedAt.Before(offers[j].ListedAt)
		}
		return offers[i].ID < offers[j].ID
	})
}
