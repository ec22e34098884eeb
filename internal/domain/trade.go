package domain

import "time"

// QuotaRecord counts how many units of a restricted listing a buyer bought this resupply window.
type QuotaRecord struct {
	BuyerID                  string    `json:"buyer_id" db:"buyer_id"`
	ListingID                string    `json:"listing_id" db:"listing_id"`
	TraderID                 string    `json:"trader_id" db:"trader_id"`
	UnitsPurchasedThisWindow int       `json:"units_purchased" db:"units_purchased"`
	LastPurchaseAt           time.Time `json:"last_purchase_at" db:"last_purchase_at"`
}

// BuyRequest is an already-deserialized purchase request.
type BuyRequest struct {
	BuyerID     string `json:"buyer_id" validate:"required"`
	GameEdition string `json:"game_edition,omitempty"`
	TraderID    string `json:"tid" validate:"required"`
	ListingID   string `json:"item_id" validate:"required"`
	Count       int    `json:"count" validate:"required,min=1"`
}

// IsRagfair reports whether the request targets a market offer rather than a trader assort.
func (r BuyRequest) IsRagfair() bool {
	return r.TraderID == RagfairTraderID
}

// SellRequest is an already-deserialized sell request with its price already computed.
type SellRequest struct {
	SellerProfileID string   `json:"seller_profile_id" validate:"required"`
	PayeeProfileID  string   `json:"payee_profile_id" validate:"required"`
	TraderID        string   `json:"tid" validate:"required"`
	ItemIDs         []string `json:"items" validate:"required,min=1"`
	Price           Money    `json:"price"`
}

// TradeWarning is one annotated failure in a trade response.
type TradeWarning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"errmsg"`
}

// TradeResult is the outcome of a buy or sell call. A non-empty Warnings slice means the
// call failed fully or partially; what was delivered is still reported.
type TradeResult struct {
	Warnings       []TradeWarning `json:"warnings"`
	Delivered      [][]ItemStack  `json:"delivered,omitempty"`
	DeliveredCount int            `json:"delivered_count"`
	Charged        *Cost          `json:"charged,omitempty"`
	Credited       *Money         `json:"credited,omitempty"`
	Removed        []ItemStack    `json:"removed,omitempty"`
}

// AddWarning appends a warning derived from err.
func (r *TradeResult) AddWarning(err error) {
	r.Warnings = append(r.Warnings, TradeWarning{Code: WarningCodeFor(err), Message: err.Error()})
}

// OK reports whether the call finished without warnings.
func (r *TradeResult) OK() bool {
	return len(r.Warnings) == 0
}
