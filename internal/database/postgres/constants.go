package postgres

const (
	queryListQuotas = `
		SELECT buyer_id, listing_id, trader_id, units_purchased, last_purchase_at
		FROM quota_records
		ORDER BY buyer_id, listing_id`

	queryUpsertQuota = `
		INSERT INTO quota_records (buyer_id, listing_id, trader_id, units_purchased, last_purchase_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (buyer_id, listing_id) DO UPDATE
		SET trader_id = EXCLUDED.trader_id,
		    units_purchased = EXCLUDED.units_purchased,
		    last_purchase_at = EXCLUDED.last_purchase_at`

	queryListPlayerOffers = `SELECT payload FROM player_offers ORDER BY offer_id`

	queryDeletePlayerOffers = `DELETE FROM player_offers`

	queryInsertPlayerOffer = `
		INSERT INTO player_offers (offer_id, seller_id, root_item_id, listed_at, ends_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)`

	queryListSellerRatings = `
		SELECT profile_id, rating, is_rating_growing
		FROM seller_ratings
		ORDER BY profile_id`

	queryDeleteSellerRatings = `DELETE FROM seller_ratings`

	queryInsertSellerRating = `
		INSERT INTO seller_ratings (profile_id, rating, is_rating_growing)
		VALUES ($1, $2, $3)`
)

const (
	ErrMsgBeginTx       = "failed to begin transaction: %w"
	ErrMsgListQuotas    = "failed to list quota records: %w"
	ErrMsgUpsertQuota   = "failed to upsert quota %s/%s: %w"
	ErrMsgListOffers    = "failed to list player offers: %w"
	ErrMsgDecodeOffer   = "failed to decode player offer: %w"
	ErrMsgEncodeOffer   = "failed to encode player offer %s: %w"
	ErrMsgDeleteOffers  = "failed to clear player offers: %w"
	ErrMsgInsertOffer   = "failed to insert player offer %s: %w"
	ErrMsgListRatings   = "failed to list seller ratings: %w"
	ErrMsgDeleteRatings = "failed to clear seller ratings: %w"
	ErrMsgInsertRating  = "failed to insert seller rating %s: %w"
)
