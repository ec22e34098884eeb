package repository

import (
	"context"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// PlayerOffers defines the interface for player offer and seller rating persistence.
// Both are saved as a whole set, replacing what was stored before.
type PlayerOffers interface {
	AllPlayerOffers(ctx context.Context) ([]domain.Offer, error)
	AllSellerRatings(ctx context.Context) ([]domain.SellerRating, error)
	BeginTx(ctx context.Context) (PlayerOffersTx, error)
}

// PlayerOffersTx defines the interface for player offer transactions
type PlayerOffersTx interface {
	Tx
	DeleteAllPlayerOffers(ctx context.Context) error
	InsertPlayerOffer(ctx context.Context, offer domain.Offer) error
	DeleteAllSellerRatings(ctx context.Context) error
	InsertSellerRating(ctx context.Context, rating domain.SellerRating) error
}
