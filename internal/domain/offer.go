package domain

import "time"

// SellerKind identifies who owns an offer. The zero value is invalid.
type SellerKind string

const (
	SellerTrader     SellerKind = "trader"
	SellerDynamicNpc SellerKind = "dynamic"
	SellerPlayer     SellerKind = "player"
)

// Valid reports whether the seller kind is one of the known variants.
func (k SellerKind) Valid() bool {
	switch k {
	case SellerTrader, SellerDynamicNpc, SellerPlayer:
		return true
	}
	return false
}

// Money is an amount in a single currency, identified by the currency item template.
type Money struct {
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
}

// Requirement is one entry of a barter scheme.
type Requirement struct {
	TemplateID     string `json:"_tpl"`
	Count          int    `json:"count"`
	OnlyFunctional bool   `json:"onlyFunctional,omitempty"`
}

// Cost is what a buyer pays for one unit of an offer: either money or a barter scheme.
type Cost struct {
	Money  *Money        `json:"money,omitempty"`
	Barter []Requirement `json:"barter,omitempty"`
}

// IsMoney reports whether the cost is a plain currency price.
func (c Cost) IsMoney() bool {
	return c.Money != nil
}

// Times scales the cost to the given number of units.
func (c Cost) Times(units int) Cost {
	out := Cost{}
	if c.Money != nil {
		out.Money = &Money{Currency: c.Money.Currency, Amount: c.Money.Amount * units}
	}
	if len(c.Barter) > 0 {
		out.Barter = make([]Requirement, len(c.Barter))
		for i, r := range c.Barter {
			r.Count *= units
			out.Barter[i] = r
		}
	}
	return out
}

// Offer is one sellable listing on the market.
type Offer struct {
	ID                   string        `json:"_id"`
	SellerKind           SellerKind    `json:"seller_kind"`
	SellerID             string        `json:"seller_id"`
	RootItemID           string        `json:"root"`
	Items                []ItemStack   `json:"items"`
	Price                *Money        `json:"price,omitempty"`
	Barter               []Requirement `json:"barter,omitempty"`
	LoyaltyLevelRequired *int          `json:"loyaltyLevel,omitempty"`
	ListedAt             time.Time     `json:"startTime"`
	EndsAt               time.Time     `json:"endTime"`
	OriginalStackCount   *int          `json:"originalStackCount,omitempty"`
	SellInOnePiece       bool          `json:"sellInOnePiece,omitempty"`
	SummaryCost          int           `json:"summaryCost"`
}

// Root returns the offer's root item, or nil for a malformed offer.
func (o *Offer) Root() *ItemStack {
	if len(o.Items) == 0 {
		return nil
	}
	return &o.Items[0]
}

// RootTemplateID returns the template id of the root item.
func (o *Offer) RootTemplateID() string {
	if root := o.Root(); root != nil {
		return root.TemplateID
	}
	return ""
}

// Stock returns the remaining stack count of the root item.
func (o *Offer) Stock() int {
	if root := o.Root(); root != nil {
		return root.StackCount()
	}
	return 0
}

// UnitCost returns the per-unit cost of the offer.
func (o *Offer) UnitCost() Cost {
	if o.Price != nil {
		m := *o.Price
		return Cost{Money: &m}
	}
	return Cost{Barter: append([]Requirement(nil), o.Barter...)}
}

// Expired reports whether the offer's end time has passed.
func (o *Offer) Expired(now time.Time) bool {
	return !o.EndsAt.After(now)
}

// Clone returns a deep copy of the offer.
func (o Offer) Clone() Offer {
	out := o
	out.Items = CloneItems(o.Items)
	if o.Price != nil {
		p := *o.Price
		out.Price = &p
	}
	out.Barter = append([]Requirement(nil), o.Barter...)
	out.LoyaltyLevelRequired = cloneIntPtr(o.LoyaltyLevelRequired)
	out.OriginalStackCount = cloneIntPtr(o.OriginalStackCount)
	return out
}

// RagfairInfo is the seller-profile side of the market: rating and the player's own offers.
type RagfairInfo struct {
	ProfileID       string  `json:"profile_id"`
	Rating          float64 `json:"rating"`
	IsRatingGrowing bool    `json:"isRatingGrowing"`
	Offers          []Offer `json:"offers"`
}

// SellerRating is the stored part of a profile's market standing.
type SellerRating struct {
	ProfileID       string  `json:"profile_id" db:"profile_id"`
	Rating          float64 `json:"rating" db:"rating"`
	IsRatingGrowing bool    `json:"isRatingGrowing" db:"is_rating_growing"`
}
