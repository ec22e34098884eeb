package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/sse"
)

// RegisterEventHandlers attaches the metrics collector, the stream forwarder
// and a debug observer for every market event type.
func RegisterEventHandlers(events *EventSystem) {
	bus := events.Bus
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollector)

	if events.Stream != nil {
		sse.NewSubscriber(events.Stream, bus).Subscribe()
	}

	for _, t := range event.AllTypes {
		bus.Subscribe(t, observeEvent)
	}
}

func observeEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Debug(LogMsgEventObserved, "type", evt.Type, "event_id", evt.ID)
	return nil
}
