package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.sold")
const (
	// EventTypeItemBought is published after a buy call delivered at least one stack
	EventTypeItemBought = "item.bought"

	// EventTypeItemSold is published after a sell call removed the sold items
	EventTypeItemSold = "item.sold"

	// EventTypeOfferExpired is published for every offer the expiry sweep removes
	EventTypeOfferExpired = "offer.expired"

	// EventTypeOfferReturned is published when an unsold player offer is mailed back
	EventTypeOfferReturned = "offer.returned"

	// EventTypeTraderResupplied is published when a trader's assort and quotas reset
	EventTypeTraderResupplied = "trader.resupplied"

	// EventTypePricesRefreshed is published after a dynamic price snapshot swap
	EventTypePricesRefreshed = "prices.refreshed"
)
