package domain

// Currency template ids
const (
	CurrencyRoubles = "5449016a4bdc2d6f028b456f"
	CurrencyDollars = "5696686a4bdc2da3298b456a"
	CurrencyEuros   = "569668774bdc2da2298b4568"
	CurrencyGP      = "5d235b4d86f7742e017bc88a"
)

// IsCurrency reports whether the template id is one of the money templates.
func IsCurrency(tpl string) bool {
	switch tpl {
	case CurrencyRoubles, CurrencyDollars, CurrencyEuros, CurrencyGP:
		return true
	}
	return false
}

// Base class template ids used for category checks
const (
	BaseClassWeapon = "5422acb9af1c889c16000029"
	BaseClassMoney  = "543be5dd4bdc2deb348b4569"
)

// RagfairTraderID is the pseudo trader id used by buy requests that target a market offer.
const RagfairTraderID = "ragfair"

// MaxTransactionQuantity caps a single buy request.
const MaxTransactionQuantity = 10000

// RootParentStash is the parent id of an assembly root that has not been placed yet.
const RootParentStash = "hideout"
