package domain

import "time"

// TraderBase is the static description of an NPC trader.
type TraderBase struct {
	ID       string `json:"_id"`
	Nickname string `json:"nickname"`
	Currency string `json:"currency"`
	// IsReputationTrader marks the dynamic NPC that absorbs sold gear into its own assort
	IsReputationTrader bool     `json:"reputation_trader,omitempty"`
	BuyPriceCoef       float64  `json:"buy_price_coef"`
	BuyCategories      []string `json:"buy_categories,omitempty"`
	ResupplySeconds    int      `json:"resupply_seconds,omitempty"`
	ListOnRagfair      bool     `json:"list_on_ragfair,omitempty"`
}

// ResupplyInterval returns the resupply period, or fallback when unset.
func (t TraderBase) ResupplyInterval(fallback time.Duration) time.Duration {
	if t.ResupplySeconds <= 0 {
		return fallback
	}
	return time.Duration(t.ResupplySeconds) * time.Second
}

// BuyProfile describes what a trader buys and at what discount from handbook.
type BuyProfile struct {
	TraderID     string
	BuyPriceCoef float64
	Categories   []string
}

// BuyProfile returns the trader's buy side.
func (t TraderBase) BuyProfile() BuyProfile {
	return BuyProfile{
		TraderID:     t.ID,
		BuyPriceCoef: t.BuyPriceCoef,
		Categories:   append([]string(nil), t.BuyCategories...),
	}
}

// AssortEntry is one sellable listing of a trader: an assembly and its cost.
// Items[0] is the root; its ID is the listing id.
type AssortEntry struct {
	Items        []ItemStack   `json:"items"`
	Price        *Money        `json:"price,omitempty"`
	Barter       []Requirement `json:"barter,omitempty"`
	LoyaltyLevel *int          `json:"loyaltyLevel,omitempty"`
}

// ListingID returns the root item id.
func (a *AssortEntry) ListingID() string {
	if len(a.Items) == 0 {
		return ""
	}
	return a.Items[0].ID
}

// Clone deep-copies the entry.
func (a AssortEntry) Clone() AssortEntry {
	out := a
	out.Items = CloneItems(a.Items)
	if a.Price != nil {
		p := *a.Price
		out.Price = &p
	}
	out.Barter = append([]Requirement(nil), a.Barter...)
	out.LoyaltyLevel = cloneIntPtr(a.LoyaltyLevel)
	return out
}

// UnitCost returns the per-unit cost of the listing.
func (a *AssortEntry) UnitCost() Cost {
	if a.Price != nil {
		m := *a.Price
		return Cost{Money: &m}
	}
	return Cost{Barter: append([]Requirement(nil), a.Barter...)}
}
