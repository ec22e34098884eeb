package metrics

import (
	"context"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// EventMetricsCollector subscribes to market events and records business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all market events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range event.AllTypes {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ItemBought:
		p, err := event.DecodePayload[domain.ItemBoughtPayload](evt.Payload)
		if err != nil {
			return e.unknown(ctx, evt, err)
		}
		UnitsBought.WithLabelValues(string(p.SellerKind)).Add(float64(p.Delivered))
		StacksDelivered.Add(float64(p.Stacks))
		if p.ChargedAmount > 0 {
			MoneySpent.WithLabelValues(p.ChargeCurrency).Add(float64(p.ChargedAmount))
		}

	case event.ItemSold:
		p, err := event.DecodePayload[domain.ItemSoldPayload](evt.Payload)
		if err != nil {
			return e.unknown(ctx, evt, err)
		}
		ItemsSold.WithLabelValues(p.TraderID).Add(float64(p.ItemCount))
		MoneyEarned.WithLabelValues(p.Currency).Add(float64(p.TotalValue))

	case event.OfferExpired:
		p, err := event.DecodePayload[domain.OfferExpiredPayload](evt.Payload)
		if err != nil {
			return e.unknown(ctx, evt, err)
		}
		OffersExpired.WithLabelValues(string(p.SellerKind)).Inc()

	case event.OfferReturned:
		OffersReturned.Inc()

	case event.TraderResupplied:
		p, err := event.DecodePayload[domain.TraderResuppliedPayload](evt.Payload)
		if err != nil {
			return e.unknown(ctx, evt, err)
		}
		TraderResupplies.WithLabelValues(p.TraderID).Inc()

	case event.PricesRefreshed:
		PriceRefreshes.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) unknown(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventPayloadUnknown, "type", evt.Type, "error", err)
	return nil
}
