package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
)

func TestEventMetricsCollector_ItemBought(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	units := UnitsBought.WithLabelValues(string(domain.SellerTrader))
	beforeUnits := testutil.ToFloat64(units)
	beforeStacks := testutil.ToFloat64(StacksDelivered)

	err := bus.Publish(context.Background(), event.NewItemBoughtEvent(domain.ItemBoughtPayload{
		SellerKind:     domain.SellerTrader,
		Delivered:      17,
		Stacks:         2,
		ChargedAmount:  1700,
		ChargeCurrency: domain.CurrencyRoubles,
	}))

	require.NoError(t, err)
	assert.Equal(t, beforeUnits+17, testutil.ToFloat64(units))
	assert.Equal(t, beforeStacks+2, testutil.ToFloat64(StacksDelivered))
}

func TestEventMetricsCollector_OfferExpired(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	c := OffersExpired.WithLabelValues(string(domain.SellerPlayer))
	before := testutil.ToFloat64(c)

	offer := &domain.Offer{ID: "o", SellerKind: domain.SellerPlayer}
	require.NoError(t, bus.Publish(context.Background(), event.NewOfferExpiredEvent(offer, offer.EndsAt)))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestEventMetricsCollector_BadPayloadCounted(t *testing.T) {
	c := EventHandlerErrors.WithLabelValues(string(event.ItemSold))
	before := testutil.ToFloat64(c)

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: event.ItemSold, Payload: "garbage"})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/offers/{id}", "404")
	before := testutil.ToFloat64(c)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/offers/abc", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
