package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

// PlayerOfferRepository keeps player offers as JSONB documents, one row per offer.
type PlayerOfferRepository struct {
	db *pgxpool.Pool
}

// NewPlayerOfferRepository creates a new PlayerOfferRepository
func NewPlayerOfferRepository(db *pgxpool.Pool) *PlayerOfferRepository {
	return &PlayerOfferRepository{db: db}
}

// AllPlayerOffers loads every stored offer ordered by id.
func (r *PlayerOfferRepository) AllPlayerOffers(ctx context.Context) ([]domain.Offer, error) {
	rows, err := r.db.Query(ctx, queryListPlayerOffers)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListOffers, err)
	}
	payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListOffers, err)
	}

	offers := make([]domain.Offer, 0, len(payloads))
	for _, p := range payloads {
		var o domain.Offer
		if err := json.Unmarshal(p, &o); err != nil {
			return nil, fmt.Errorf(ErrMsgDecodeOffer, err)
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// AllSellerRatings loads every stored rating ordered by profile id.
func (r *PlayerOfferRepository) AllSellerRatings(ctx context.Context) ([]domain.SellerRating, error) {
	rows, err := r.db.Query(ctx, queryListSellerRatings)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRatings, err)
	}
	ratings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.SellerRating])
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRatings, err)
	}
	return ratings, nil
}

// BeginTx starts a transaction that replaces the stored set.
func (r *PlayerOfferRepository) BeginTx(ctx context.Context) (repository.PlayerOffersTx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &playerOffersTx{pgxTx: tx}, nil
}

type playerOffersTx struct {
	pgxTx
}

func (t *playerOffersTx) DeleteAllPlayerOffers(ctx context.Context) error {
	if _, err := t.tx.Exec(ctx, queryDeletePlayerOffers); err != nil {
		return fmt.Errorf(ErrMsgDeleteOffers, err)
	}
	return nil
}

func (t *playerOffersTx) InsertPlayerOffer(ctx context.Context, offer domain.Offer) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeOffer, offer.ID, err)
	}
	_, err = t.tx.Exec(ctx, queryInsertPlayerOffer,
		offer.ID, offer.SellerID, offer.RootItemID, offer.ListedAt, offer.EndsAt, payload)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertOffer, offer.ID, err)
	}
	return nil
}

func (t *playerOffersTx) DeleteAllSellerRatings(ctx context.Context) error {
	if _, err := t.tx.Exec(ctx, queryDeleteSellerRatings); err != nil {
		return fmt.Errorf(ErrMsgDeleteRatings, err)
	}
	return nil
}

func (t *playerOffersTx) InsertSellerRating(ctx context.Context, rating domain.SellerRating) error {
	_, err := t.tx.Exec(ctx, queryInsertSellerRating, rating.ProfileID, rating.Rating, rating.IsRatingGrowing)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertRating, rating.ProfileID, err)
	}
	return nil
}
