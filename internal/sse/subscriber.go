package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/event"
)

// Subscriber forwards market events from the bus to the hub.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a Subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the forwarder for every market event type.
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(evt.ID, string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "event_id", evt.ID, "clients", s.hub.ClientCount())
	return nil
}
