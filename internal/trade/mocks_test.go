package trade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/profile"
	"github.com/osse101/FleaMarket_Go/internal/quota"
	"github.com/osse101/FleaMarket_Go/internal/ragfair"
	"github.com/osse101/FleaMarket_Go/internal/trader"
)

const (
	rub = domain.CurrencyRoubles

	tplAmmo  = "ammo"
	tplGun   = "gun"
	tplMag   = "mag"
	tplBolts = "bolts"

	praporID = "prapor"
	fenceID  = "fence"

	listingAmmo = "listing-ammo"
	listingGun  = "listing-gun"
	listingFree = "listing-free"
	listingKey  = "listing-key"

	buyer  = "buyer"
	seller = "seller"
)

type MockMarket struct {
	mock.Mock
}

func (m *MockMarket) ByID(id string) (domain.Offer, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.Offer), args.Bool(1)
}

func (m *MockMarket) Reserve(id string, n int) error {
	return m.Called(id, n).Error(0)
}

func (m *MockMarket) CommitReserved(ctx context.Context, id string, n int) error {
	return m.Called(ctx, id, n).Error(0)
}

func (m *MockMarket) ReleaseReserved(id string, n int) {
	m.Called(id, n)
}

func (m *MockMarket) RemoveTraderListing(ctx context.Context, traderID, tpl, listingID string) error {
	return m.Called(ctx, traderID, tpl, listingID).Error(0)
}

type MockPayment struct {
	mock.Mock
}

func (m *MockPayment) Charge(ctx context.Context, profileID string, cost domain.Cost) error {
	return m.Called(ctx, profileID, cost).Error(0)
}

func (m *MockPayment) Credit(ctx context.Context, profileID string, money domain.Money) error {
	return m.Called(ctx, profileID, money).Error(0)
}

type MockPricer struct {
	mock.Mock
}

func (m *MockPricer) OfferPrice(ctx context.Context, items []domain.ItemStack, currency string, isPackOffer bool) int {
	return m.Called(ctx, items, currency, isPackOffer).Int(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) last() event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// world wires the real in-memory collaborators around the service.
type world struct {
	svc       *service
	catalog   *catalog.Store
	registry  *ragfair.Registry
	traders   *trader.Store
	ledger    *quota.Ledger
	inventory *profile.Inventory
	wallet    *profile.Wallet
	publisher *recordingPublisher
}

func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	cat, err := catalog.NewStore([]domain.ItemTemplate{
		{ID: "node", Kind: domain.TemplateKindNode},
		{ID: rub, ParentID: "node", Kind: domain.TemplateKindItem, HandbookPrice: 1, StackMaxSize: 500000},
		{ID: tplAmmo, ParentID: "node", Kind: domain.TemplateKindItem, HandbookPrice: 60, StackMaxSize: 10},
		{ID: tplGun, ParentID: "node", Kind: domain.TemplateKindItem, HandbookPrice: 20000, StackMaxSize: 1, IsWeapon: true},
		{ID: tplMag, ParentID: "node", Kind: domain.TemplateKindItem, HandbookPrice: 1500, StackMaxSize: 1},
		{ID: tplBolts, ParentID: "node", Kind: domain.TemplateKindItem, HandbookPrice: 12000, StackMaxSize: 1},
	}, nil)
	require.NoError(t, err)
	return cat
}

func stack(id, tpl, parent string, count int) domain.ItemStack {
	return domain.ItemStack{ID: id, TemplateID: tpl, ParentID: parent, Upd: &domain.Upd{StackObjectsCount: count}}
}

func testTraders(t *testing.T) *trader.Store {
	t.Helper()
	s := trader.NewStore()

	ammo := stack(listingAmmo, tplAmmo, domain.RootParentStash, 100)
	gun := stack(listingGun, tplGun, domain.RootParentStash, 3)
	gun.Upd.BuyRestrictionMax = domain.IntPtr(2)
	gun.Upd.BuyRestrictionCurrent = domain.IntPtr(0)
	free := stack(listingFree, tplBolts, domain.RootParentStash, 5)

	require.NoError(t, s.Register(
		domain.TraderBase{ID: praporID, Nickname: "Prapor", Currency: rub, BuyPriceCoef: 35, BuyCategories: []string{"node"}, ResupplySeconds: 3600, ListOnRagfair: true},
		[]domain.AssortEntry{
			{Items: []domain.ItemStack{ammo}, Price: &domain.Money{Currency: rub, Amount: 70}},
			{Items: []domain.ItemStack{gun, {ID: "listing-gun-mag", TemplateID: tplMag, ParentID: listingGun, SlotID: "mod_magazine"}}, Price: &domain.Money{Currency: rub, Amount: 25000}},
			{Items: []domain.ItemStack{free}, Barter: []domain.Requirement{{TemplateID: tplAmmo, Count: 2}}},
		}))

	key := stack(listingKey, tplBolts, domain.RootParentStash, 1)
	require.NoError(t, s.Register(
		domain.TraderBase{ID: fenceID, Nickname: "Fence", Currency: rub, IsReputationTrader: true, BuyPriceCoef: 60, BuyCategories: []string{"node"}, ResupplySeconds: 600, ListOnRagfair: true},
		[]domain.AssortEntry{{Items: []domain.ItemStack{key}, Price: &domain.Money{Currency: rub, Amount: 41000}}}))
	return s
}

func newWorld(t *testing.T, maxRoots int) *world {
	t.Helper()
	w := &world{
		catalog:   testCatalog(t),
		traders:   testTraders(t),
		publisher: &recordingPublisher{},
	}
	w.registry = ragfair.NewRegistry(w.catalog, nil, nil, w.publisher, config.RagfairConfig{ReputationLoss: 0.01, ExpiredDynamicArchiveSize: 10})
	w.ledger = quota.NewLedger(nil, config.QuotaConfig{BuyRestrictionMultipliers: map[string]float64{"edge_of_darkness": 1.5}})
	w.inventory = profile.NewInventory(w.catalog, maxRoots)
	w.wallet = profile.NewWallet(w.inventory)

	pricer := &MockPricer{}
	pricer.On("OfferPrice", mock.Anything, mock.Anything, rub, false).Return(9000)

	w.svc = NewService(Deps{
		Catalog:   w.catalog,
		Market:    w.registry,
		Traders:   w.traders,
		Quotas:    w.ledger,
		Inventory: w.inventory,
		Payment:   w.wallet,
		Sink:      w.traders,
		Pricer:    pricer,
		Publisher: w.publisher,
	}).(*service)
	return w
}

func (w *world) fund(t *testing.T, profileID string, amount int) {
	t.Helper()
	require.NoError(t, w.wallet.Credit(context.Background(), profileID, domain.Money{Currency: rub, Amount: amount}))
}

func dynamicOffer(id, tpl string, count, price int) domain.Offer {
	return domain.Offer{
		ID:         id,
		SellerKind: domain.SellerDynamicNpc,
		SellerID:   "npc",
		Items:      []domain.ItemStack{stack(id+"-root", tpl, domain.RootParentStash, count)},
		Price:      &domain.Money{Currency: rub, Amount: price},
		ListedAt:   time.Now().Add(-time.Minute),
		EndsAt:     time.Now().Add(time.Hour),
	}
}
