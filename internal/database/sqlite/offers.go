package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/repository"
)

const (
	queryListPlayerOffers   = `SELECT offer_id, payload FROM player_offers ORDER BY offer_id`
	queryDeletePlayerOffers = `DELETE FROM player_offers`
	queryInsertPlayerOffer  = `
		INSERT INTO player_offers (offer_id, seller_id, root_item_id, listed_at, ends_at, payload)
		VALUES (:offer_id, :seller_id, :root_item_id, :listed_at, :ends_at, :payload)`

	queryListSellerRatings   = `SELECT profile_id, rating, is_rating_growing FROM seller_ratings ORDER BY profile_id`
	queryDeleteSellerRatings = `DELETE FROM seller_ratings`
	queryInsertSellerRating  = `
		INSERT INTO seller_ratings (profile_id, rating, is_rating_growing)
		VALUES (:profile_id, :rating, :is_rating_growing)`
)

// offerRow is the stored shape of a player offer; the whole offer lives in payload.
type offerRow struct {
	OfferID    string    `db:"offer_id"`
	SellerID   string    `db:"seller_id"`
	RootItemID string    `db:"root_item_id"`
	ListedAt   time.Time `db:"listed_at"`
	EndsAt     time.Time `db:"ends_at"`
	Payload    string    `db:"payload"`
}

// PlayerOfferRepository implements repository.PlayerOffers on SQLite.
type PlayerOfferRepository struct {
	db *DB
}

// NewPlayerOfferRepository creates a new PlayerOfferRepository
func NewPlayerOfferRepository(db *DB) *PlayerOfferRepository {
	return &PlayerOfferRepository{db: db}
}

func (r *PlayerOfferRepository) AllPlayerOffers(ctx context.Context) ([]domain.Offer, error) {
	var rows []offerRow
	if err := r.db.conn.SelectContext(ctx, &rows, queryListPlayerOffers); err != nil {
		return nil, fmt.Errorf(ErrMsgListOffers, err)
	}

	offers := make([]domain.Offer, 0, len(rows))
	for _, row := range rows {
		var o domain.Offer
		if err := json.Unmarshal([]byte(row.Payload), &o); err != nil {
			return nil, fmt.Errorf(ErrMsgDecodeOffer, row.OfferID, err)
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func (r *PlayerOfferRepository) AllSellerRatings(ctx context.Context) ([]domain.SellerRating, error) {
	var ratings []domain.SellerRating
	if err := r.db.conn.SelectContext(ctx, &ratings, queryListSellerRatings); err != nil {
		return nil, fmt.Errorf(ErrMsgListRatings, err)
	}
	return ratings, nil
}

func (r *PlayerOfferRepository) BeginTx(ctx context.Context) (repository.PlayerOffersTx, error) {
	tx, err := r.db.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &playerOffersTx{sqlxTx: tx}, nil
}

type playerOffersTx struct {
	sqlxTx
}

func (t *playerOffersTx) DeleteAllPlayerOffers(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, queryDeletePlayerOffers); err != nil {
		return fmt.Errorf(ErrMsgDeleteOffers, err)
	}
	return nil
}

func (t *playerOffersTx) InsertPlayerOffer(ctx context.Context, offer domain.Offer) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeOffer, offer.ID, err)
	}
	row := offerRow{
		OfferID:    offer.ID,
		SellerID:   offer.SellerID,
		RootItemID: offer.RootItemID,
		ListedAt:   offer.ListedAt,
		EndsAt:     offer.EndsAt,
		Payload:    string(payload),
	}
	if _, err := t.tx.NamedExecContext(ctx, queryInsertPlayerOffer, row); err != nil {
		return fmt.Errorf(ErrMsgInsertOffer, offer.ID, err)
	}
	return nil
}

func (t *playerOffersTx) DeleteAllSellerRatings(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, queryDeleteSellerRatings); err != nil {
		return fmt.Errorf(ErrMsgDeleteRatings, err)
	}
	return nil
}

func (t *playerOffersTx) InsertSellerRating(ctx context.Context, rating domain.SellerRating) error {
	if _, err := t.tx.NamedExecContext(ctx, queryInsertSellerRating, rating); err != nil {
		return fmt.Errorf(ErrMsgInsertRating, rating.ProfileID, err)
	}
	return nil
}
