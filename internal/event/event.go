package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	ID       string            `json:"id"`
	Version  string            `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type              `json:"type"`
	Payload  interface{}       `json:"payload"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Market event types
const (
	ItemBought       Type = domain.EventTypeItemBought
	ItemSold         Type = domain.EventTypeItemSold
	OfferExpired     Type = domain.EventTypeOfferExpired
	OfferReturned    Type = domain.EventTypeOfferReturned
	TraderResupplied Type = domain.EventTypeTraderResupplied
	PricesRefreshed  Type = domain.EventTypePricesRefreshed
)

// AllTypes lists every event type the market publishes.
var AllTypes = []Type{ItemBought, ItemSold, OfferExpired, OfferReturned, TraderResupplied, PricesRefreshed}

func newEvent(t Type, payload interface{}) Event {
	return Event{
		ID:      uuid.NewString(),
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
	}
}

// NewItemBoughtEvent creates an item.bought event
func NewItemBoughtEvent(p domain.ItemBoughtPayload) Event {
	return newEvent(ItemBought, p)
}

// NewItemSoldEvent creates an item.sold event
func NewItemSoldEvent(p domain.ItemSoldPayload) Event {
	return newEvent(ItemSold, p)
}

// NewOfferExpiredEvent creates an offer.expired event
func NewOfferExpiredEvent(offer *domain.Offer, at time.Time) Event {
	return newEvent(OfferExpired, domain.OfferExpiredPayload{
		OfferID:    offer.ID,
		SellerKind: offer.SellerKind,
		SellerID:   offer.SellerID,
		TemplateID: offer.RootTemplateID(),
		Timestamp:  at.Unix(),
	})
}

// NewOfferReturnedEvent creates an offer.returned event
func NewOfferReturnedEvent(p domain.OfferReturnedPayload) Event {
	return newEvent(OfferReturned, p)
}

// NewTraderResuppliedEvent creates a trader.resupplied event
func NewTraderResuppliedEvent(p domain.TraderResuppliedPayload) Event {
	return newEvent(TraderResupplied, p)
}

// NewPricesRefreshedEvent creates a prices.refreshed event
func NewPricesRefreshedEvent(dynamic, static int, at time.Time) Event {
	return newEvent(PricesRefreshed, domain.PricesRefreshedPayload{
		DynamicPrices: dynamic,
		StaticPrices:  static,
		Timestamp:     at.Unix(),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the write side of the bus. Services depend on this.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
