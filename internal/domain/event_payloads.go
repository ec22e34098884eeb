package domain

// ItemBoughtPayload is the event payload for item.bought events
type ItemBoughtPayload struct {
	BuyerID        string     `json:"buyer_id"`
	SellerKind     SellerKind `json:"seller_kind"`
	TraderID       string     `json:"trader_id"`
	ListingID      string     `json:"listing_id"`
	TemplateID     string     `json:"template_id"`
	Requested      int        `json:"requested"`
	Delivered      int        `json:"delivered"`
	Stacks         int        `json:"stacks"`
	ChargedAmount  int        `json:"charged_amount"`
	ChargeCurrency string     `json:"charge_currency,omitempty"`
	Timestamp      int64      `json:"timestamp"`
}

// ItemSoldPayload is the event payload for item.sold events
type ItemSoldPayload struct {
	SellerID   string `json:"seller_id"`
	PayeeID    string `json:"payee_id"`
	TraderID   string `json:"trader_id"`
	ItemCount  int    `json:"item_count"`
	TotalValue int    `json:"total_value"`
	Currency   string `json:"currency"`
	Timestamp  int64  `json:"timestamp"`
}

// OfferExpiredPayload is the event payload for offer.expired events
type OfferExpiredPayload struct {
	OfferID    string     `json:"offer_id"`
	SellerKind SellerKind `json:"seller_kind"`
	SellerID   string     `json:"seller_id"`
	TemplateID string     `json:"template_id"`
	Timestamp  int64      `json:"timestamp"`
}

// OfferReturnedPayload is the event payload for offer.returned events
type OfferReturnedPayload struct {
	OfferID       string  `json:"offer_id"`
	SellerID      string  `json:"seller_id"`
	ReturnedUnits int     `json:"returned_units"`
	Stacks        int     `json:"stacks"`
	RatingLoss    float64 `json:"rating_loss"`
	Timestamp     int64   `json:"timestamp"`
}

// TraderResuppliedPayload is the event payload for trader.resupplied events
type TraderResuppliedPayload struct {
	TraderID     string `json:"trader_id"`
	QuotasReset  int    `json:"quotas_reset"`
	OffersListed int    `json:"offers_listed"`
	NextResupply int64  `json:"next_resupply"`
	Timestamp    int64  `json:"timestamp"`
}

// PricesRefreshedPayload is the event payload for prices.refreshed events
type PricesRefreshedPayload struct {
	DynamicPrices int   `json:"dynamic_prices"`
	StaticPrices  int   `json:"static_prices"`
	Timestamp     int64 `json:"timestamp"`
}
