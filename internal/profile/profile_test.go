package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

const (
	rub     = "5449016a4bdc2d6f028b456f"
	tplGun  = "gun"
	tplMag  = "mag"
	tplBolt = "bolt"
)

type MockPlayerOffers struct {
	mock.Mock
}

func (m *MockPlayerOffers) AllPlayerOffers(ctx context.Context) ([]domain.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockPlayerOffers) AllSellerRatings(ctx context.Context) ([]domain.SellerRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SellerRating), args.Error(1)
}

func (m *MockPlayerOffers) BeginTx(ctx context.Context) (repository.PlayerOffersTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PlayerOffersTx), args.Error(1)
}

type MockPlayerOffersTx struct {
	mock.Mock
}

func (m *MockPlayerOffersTx) DeleteAllPlayerOffers(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlayerOffersTx) InsertPlayerOffer(ctx context.Context, offer domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockPlayerOffersTx) DeleteAllSellerRatings(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlayerOffersTx) InsertSellerRating(ctx context.Context, rating domain.SellerRating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockPlayerOffersTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlayerOffersTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	cat, err := catalog.NewStore([]domain.ItemTemplate{
		{ID: "root", Kind: domain.TemplateKindNode},
		{ID: tplGun, ParentID: "root", Kind: domain.TemplateKindItem, StackMaxSize: 1},
		{ID: tplMag, ParentID: "root", Kind: domain.TemplateKindItem, StackMaxSize: 1},
		{ID: tplBolt, ParentID: "root", Kind: domain.TemplateKindItem, StackMaxSize: 5},
	}, nil)
	require.NoError(t, err)
	return cat
}

func playerOffer(id, seller string) domain.Offer {
	return domain.Offer{
		ID:         id,
		SellerKind: domain.SellerPlayer,
		SellerID:   seller,
		RootItemID: id + "-item",
		Items:      []domain.ItemStack{{ID: id + "-item", TemplateID: tplBolt, ParentID: domain.RootParentStash}},
	}
}

func TestStore_OffersAndRating(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	require.NoError(t, s.AddOffer(ctx, playerOffer("o1", "seller")))
	require.NoError(t, s.AddOffer(ctx, playerOffer("o2", "seller")))
	assert.ErrorIs(t, s.AddOffer(ctx, domain.Offer{ID: "x", SellerKind: domain.SellerTrader, SellerID: "t"}), domain.ErrInvalidInput)

	// CASE 1: BEST CASE - remove one offer, lose rating
	require.NoError(t, s.RemoveOffer(ctx, "seller", "o1"))
	require.NoError(t, s.AdjustRating(ctx, "seller", 0.5))
	require.NoError(t, s.AdjustRating(ctx, "seller", -0.2))

	info, err := s.Info("seller")
	require.NoError(t, err)
	require.Len(t, info.Offers, 1)
	assert.Equal(t, "o2", info.Offers[0].ID)
	assert.InDelta(t, 0.3, info.Rating, 1e-9)
	assert.False(t, info.IsRatingGrowing)

	// CASE 2: WORST CASE - unknown offer or profile
	assert.ErrorIs(t, s.RemoveOffer(ctx, "seller", "o1"), domain.ErrOfferNotFound)
	assert.ErrorIs(t, s.RemoveOffer(ctx, "nobody", "o1"), domain.ErrProfileNotFound)
	assert.ErrorIs(t, s.AdjustRating(ctx, "nobody", 1), domain.ErrProfileNotFound)

	// CASE 3: without a repository the source is the profiles themselves
	offers, err := s.AllPlayerOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 1)
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("load attaches offers and ratings to profiles", func(t *testing.T) {
		repo := &MockPlayerOffers{}
		repo.On("AllSellerRatings", mock.Anything).Return([]domain.SellerRating{
			{ProfileID: "b", Rating: -0.4},
			{ProfileID: "quiet", Rating: 1.5, IsRatingGrowing: true},
		}, nil)
		repo.On("AllPlayerOffers", mock.Anything).Return([]domain.Offer{playerOffer("o1", "a"), playerOffer("o2", "b")}, nil)

		s := NewStore(repo)
		s.Ensure(ctx, "b", 0.2)
		offers, err := s.AllPlayerOffers(ctx)
		require.NoError(t, err)
		assert.Len(t, offers, 2)

		info, err := s.Info("b")
		require.NoError(t, err)
		assert.Equal(t, "o2", info.Offers[0].ID)
		assert.InDelta(t, -0.4, info.Rating, 1e-9, "stored rating wins over the starting one")

		// a seller with no live offers keeps their standing
		info, err = s.Info("quiet")
		require.NoError(t, err)
		assert.Empty(t, info.Offers)
		assert.InDelta(t, 1.5, info.Rating, 1e-9)
		assert.True(t, info.IsRatingGrowing)
	})

	t.Run("rating load failure stops the load", func(t *testing.T) {
		repo := &MockPlayerOffers{}
		repo.On("AllSellerRatings", mock.Anything).Return(nil, errors.New("db gone"))

		_, err := NewStore(repo).AllPlayerOffers(ctx)
		require.Error(t, err)
		repo.AssertNotCalled(t, "AllPlayerOffers", mock.Anything)
	})

	t.Run("save replaces the stored offers and ratings", func(t *testing.T) {
		repo := &MockPlayerOffers{}
		tx := &MockPlayerOffersTx{}
		repo.On("BeginTx", mock.Anything).Return(tx, nil)
		tx.On("DeleteAllPlayerOffers", mock.Anything).Return(nil).Once()
		tx.On("InsertPlayerOffer", mock.Anything, mock.Anything).Return(nil).Twice()
		tx.On("DeleteAllSellerRatings", mock.Anything).Return(nil).Once()
		tx.On("InsertSellerRating", mock.Anything, domain.SellerRating{ProfileID: "a", Rating: -0.1}).Return(nil).Once()
		tx.On("InsertSellerRating", mock.Anything, domain.SellerRating{ProfileID: "z", Rating: 2, IsRatingGrowing: true}).Return(nil).Once()
		tx.On("Commit", mock.Anything).Return(nil).Once()
		tx.On("Rollback", mock.Anything).Return(nil)

		s := NewStore(repo)
		require.NoError(t, s.AddOffer(ctx, playerOffer("o1", "a")))
		require.NoError(t, s.AdjustRating(ctx, "a", -0.1))
		s.Ensure(ctx, "z", 0)
		require.NoError(t, s.AdjustRating(ctx, "z", 2))

		require.NoError(t, s.SaveOffers(ctx, []domain.Offer{playerOffer("o1", "a"), playerOffer("o2", "a")}))
		tx.AssertExpectations(t)
	})

	t.Run("rating insert failure rolls back", func(t *testing.T) {
		repo := &MockPlayerOffers{}
		tx := &MockPlayerOffersTx{}
		repo.On("BeginTx", mock.Anything).Return(tx, nil)
		tx.On("DeleteAllPlayerOffers", mock.Anything).Return(nil)
		tx.On("DeleteAllSellerRatings", mock.Anything).Return(nil)
		tx.On("InsertSellerRating", mock.Anything, mock.Anything).Return(errors.New("constraint"))
		tx.On("Rollback", mock.Anything).Return(nil).Once()

		s := NewStore(repo)
		s.Ensure(ctx, "a", 0)
		require.Error(t, s.SaveOffers(ctx, nil))
		tx.AssertNotCalled(t, "Commit", mock.Anything)
		tx.AssertExpectations(t)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		repo := &MockPlayerOffers{}
		tx := &MockPlayerOffersTx{}
		repo.On("BeginTx", mock.Anything).Return(tx, nil)
		tx.On("DeleteAllPlayerOffers", mock.Anything).Return(nil)
		tx.On("InsertPlayerOffer", mock.Anything, mock.Anything).Return(errors.New("constraint"))
		tx.On("Rollback", mock.Anything).Return(nil).Once()

		err := NewStore(repo).SaveOffers(ctx, []domain.Offer{playerOffer("o1", "a")})
		require.Error(t, err)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
		tx.AssertExpectations(t)
	})
}

func TestMailbox(t *testing.T) {
	ctx := context.Background()
	m := NewMailbox()
	items := []domain.ItemStack{{ID: "a", TemplateID: tplBolt}}

	require.NoError(t, m.ReturnItems(ctx, "p", items))
	items[0].ID = "mutated"

	inbox := m.Inbox("p")
	require.Len(t, inbox, 1)
	assert.Equal(t, "a", inbox[0].Items[0].ID)
	assert.Empty(t, m.Inbox("other"))
	assert.ErrorIs(t, m.ReturnItems(ctx, "p", nil), domain.ErrInvalidInput)
}

func TestInventory_PlaceAndRemove(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(newCatalog(t), 2)
	gun := []domain.ItemStack{
		{ID: "g1", TemplateID: tplGun, ParentID: "somewhere"},
		{ID: "m1", TemplateID: tplMag, ParentID: "g1", SlotID: "mod_magazine"},
	}

	// CASE 1: BEST CASE - assembly placed with its root in the stash
	require.NoError(t, inv.Place(ctx, "p", gun))
	found, ok := inv.Find("p", "g1")
	require.True(t, ok)
	require.Len(t, found, 2)
	assert.Equal(t, domain.RootParentStash, found[0].ParentID)

	// CASE 2: INVALID - unknown template, duplicate id
	err := inv.Place(ctx, "p", []domain.ItemStack{{ID: "x", TemplateID: "nope"}})
	assert.ErrorIs(t, err, domain.ErrIncompatibleItem)
	err = inv.Place(ctx, "p", []domain.ItemStack{{ID: "m1", TemplateID: tplBolt}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// CASE 3: EDGE CASE - root cap reached
	require.NoError(t, inv.Place(ctx, "p", []domain.ItemStack{{ID: "b1", TemplateID: tplBolt}}))
	err = inv.Place(ctx, "p", []domain.ItemStack{{ID: "b2", TemplateID: tplBolt}})
	assert.ErrorIs(t, err, domain.ErrNoSpace)

	// CASE 4: removing a root takes its children
	removed, err := inv.Remove(ctx, "p", "g1")
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Len(t, inv.Items("p"), 1)
	_, err = inv.Remove(ctx, "p", "g1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWallet(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(newCatalog(t), 0)
	w := NewWallet(inv)

	require.NoError(t, w.Credit(ctx, "p", domain.Money{Currency: rub, Amount: 1000}))
	assert.ErrorIs(t, w.Credit(ctx, "p", domain.Money{Currency: rub, Amount: 0}), domain.ErrInvalidInput)

	// CASE 1: BEST CASE - money
	require.NoError(t, w.Charge(ctx, "p", domain.Cost{Money: &domain.Money{Currency: rub, Amount: 400}}))
	assert.Equal(t, 600, w.Balance("p", rub))

	// CASE 2: WORST CASE - not enough money takes nothing
	err := w.Charge(ctx, "p", domain.Cost{Money: &domain.Money{Currency: rub, Amount: 601}})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 600, w.Balance("p", rub))

	// CASE 3: barter splits the last stack touched
	bolts := domain.ItemStack{ID: "s1", TemplateID: tplBolt, Upd: &domain.Upd{StackObjectsCount: 3}}
	require.NoError(t, inv.Place(ctx, "p", []domain.ItemStack{bolts}))
	bolts.ID, bolts.Upd = "s2", &domain.Upd{StackObjectsCount: 3}
	require.NoError(t, inv.Place(ctx, "p", []domain.ItemStack{bolts}))

	barter := domain.Cost{Barter: []domain.Requirement{{TemplateID: tplBolt, Count: 4}}}
	require.NoError(t, w.Charge(ctx, "p", barter))
	assert.Equal(t, 2, inv.Units("p", tplBolt))
	assert.Len(t, inv.Items("p"), 1)

	// CASE 4: barter short takes nothing
	assert.ErrorIs(t, w.Charge(ctx, "p", barter), domain.ErrInsufficientFunds)
	assert.Equal(t, 2, inv.Units("p", tplBolt))
}
