package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe(ItemBought, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	evt := NewItemBoughtEvent(domain.ItemBoughtPayload{BuyerID: "pmc", Delivered: 17, Stacks: 2})
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, ItemBought, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	assert.NotEmpty(t, got.ID)
	payload, err := DecodePayload[domain.ItemBoughtPayload](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, 17, payload.Delivered)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}

	bus.Subscribe(ItemSold, handler)
	bus.Subscribe(ItemSold, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: ItemSold}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: "unheard"}))
}

func TestMemoryBus_PublishErrorRunsAllHandlers(t *testing.T) {
	bus := NewMemoryBus()
	ran := false
	bus.Subscribe(OfferExpired, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(OfferExpired, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: OfferExpired})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.True(t, ran)
}

func TestNewOfferExpiredEvent(t *testing.T) {
	offer := &domain.Offer{
		ID:         "o1",
		SellerKind: domain.SellerDynamicNpc,
		SellerID:   "npc",
		Items:      []domain.ItemStack{{ID: "i1", TemplateID: "tpl"}},
	}
	at := time.Unix(1700000000, 0)

	evt := NewOfferExpiredEvent(offer, at)

	payload := evt.Payload.(domain.OfferExpiredPayload)
	assert.Equal(t, "tpl", payload.TemplateID)
	assert.Equal(t, int64(1700000000), payload.Timestamp)
}
