package profile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

// Store keeps the market side of every profile: rating and the player's own offers.
// Player offers and ratings are persisted through repo when one is set.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*domain.RagfairInfo
	repo     repository.PlayerOffers
}

// NewStore creates a profile store. repo may be nil for a purely in-memory store.
func NewStore(repo repository.PlayerOffers) *Store {
	return &Store{
		profiles: make(map[string]*domain.RagfairInfo),
		repo:     repo,
	}
}

// Ensure creates the profile if it does not exist yet.
func (s *Store) Ensure(ctx context.Context, profileID string, rating float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profileID]; ok {
		return
	}
	s.profiles[profileID] = &domain.RagfairInfo{ProfileID: profileID, Rating: rating}
	logger.FromContext(ctx).Debug(LogMsgProfileCreated, "profile_id", profileID)
}

// Info returns a copy of the profile's market info.
func (s *Store) Info(profileID string) (domain.RagfairInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return domain.RagfairInfo{}, fmt.Errorf(ErrMsgProfileFmt, domain.ErrProfileNotFound, profileID)
	}
	out := *p
	out.Offers = make([]domain.Offer, len(p.Offers))
	for i := range p.Offers {
		out.Offers[i] = p.Offers[i].Clone()
	}
	return out, nil
}

// AddOffer records a player offer on its seller's profile, creating the profile if needed.
func (s *Store) AddOffer(ctx context.Context, offer domain.Offer) error {
	if offer.SellerKind != domain.SellerPlayer || offer.SellerID == "" {
		return fmt.Errorf(ErrMsgOfferFmt, domain.ErrInvalidInput, offer.SellerID, offer.ID)
	}
	s.Ensure(ctx, offer.SellerID, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[offer.SellerID]
	p.Offers = append(p.Offers, offer.Clone())
	return nil
}

// AdjustRating adds delta to the rating. A loss clears the rising flag, a gain sets it.
func (s *Store) AdjustRating(ctx context.Context, profileID string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return fmt.Errorf(ErrMsgProfileFmt, domain.ErrProfileNotFound, profileID)
	}
	p.Rating += delta
	p.IsRatingGrowing = delta > 0
	return nil
}

// RemoveOffer drops an offer from the seller's list.
func (s *Store) RemoveOffer(ctx context.Context, profileID, offerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return fmt.Errorf(ErrMsgProfileFmt, domain.ErrProfileNotFound, profileID)
	}
	for i := range p.Offers {
		if p.Offers[i].ID == offerID {
			p.Offers = append(p.Offers[:i], p.Offers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf(ErrMsgOfferFmt, domain.ErrOfferNotFound, profileID, offerID)
}

// AllPlayerOffers reads the persisted ratings and player offers and attaches each offer to
// its seller profile. Without a repository it returns what the profiles already hold.
func (s *Store) AllPlayerOffers(ctx context.Context) ([]domain.Offer, error) {
	if s.repo == nil {
		return s.offers(), nil
	}

	ratings, err := s.repo.AllSellerRatings(ctx)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.AllPlayerOffers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, p := range s.profiles {
		p.Offers = nil
	}
	for _, r := range ratings {
		p, ok := s.profiles[r.ProfileID]
		if !ok {
			p = &domain.RagfairInfo{ProfileID: r.ProfileID}
			s.profiles[r.ProfileID] = p
		}
		p.Rating = r.Rating
		p.IsRatingGrowing = r.IsRatingGrowing
	}
	for i := range offers {
		o := offers[i]
		p, ok := s.profiles[o.SellerID]
		if !ok {
			p = &domain.RagfairInfo{ProfileID: o.SellerID}
			s.profiles[o.SellerID] = p
		}
		p.Offers = append(p.Offers, o.Clone())
	}
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgMarketStateLoaded, "offers", len(offers), "ratings", len(ratings))
	return offers, nil
}

// SaveOffers replaces the persisted player offers with offers, which should be the live
// set from the market since profiles keep the stack count they were listed with. Every
// profile's rating is saved in the same transaction.
func (s *Store) SaveOffers(ctx context.Context, offers []domain.Offer) error {
	if s.repo == nil {
		return nil
	}
	ratings := s.ratings()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.DeleteAllPlayerOffers(ctx); err != nil {
		return fmt.Errorf(ErrMsgSavePlayerOffers, err)
	}
	for _, o := range offers {
		if err := tx.InsertPlayerOffer(ctx, o); err != nil {
			return fmt.Errorf(ErrMsgSavePlayerOffers, err)
		}
	}
	if err := tx.DeleteAllSellerRatings(ctx); err != nil {
		return fmt.Errorf(ErrMsgSaveRatings, err)
	}
	for _, r := range ratings {
		if err := tx.InsertSellerRating(ctx, r); err != nil {
			return fmt.Errorf(ErrMsgSaveRatings, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTx, err)
	}

	logger.FromContext(ctx).Info(LogMsgPlayerOffersSaved, "offers", len(offers), "ratings", len(ratings))
	return nil
}

// offers returns every held player offer sorted by id.
func (s *Store) offers() []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Offer
	for _, p := range s.profiles {
		for i := range p.Offers {
			out = append(out, p.Offers[i].Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ratings returns every profile's rating sorted by profile id.
func (s *Store) ratings() []domain.SellerRating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SellerRating, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, domain.SellerRating{ProfileID: p.ProfileID, Rating: p.Rating, IsRatingGrowing: p.IsRatingGrowing})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out
}
