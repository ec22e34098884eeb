package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is a connected stream. A nil filter receives every event type.
type Client struct {
	ID     string
	Events chan Event
	filter map[string]struct{}
}

func (c *Client) wants(eventType string) bool {
	if c.filter == nil {
		return true
	}
	_, ok := c.filter[eventType]
	return ok
}

// Hub fans events out to connected clients. Slow clients miss events rather
// than stall the broadcast loop.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	now        func() time.Time
}

// NewHub creates a Hub. Call Start before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		now:        time.Now,
	}
}

// Start runs the broadcast loop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, c := range h.clients {
			close(c.Events)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				close(c.Events)
				delete(h.clients, id)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				if !c.wants(evt.Type) {
					continue
				}
				select {
				case c.Events <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client that receives only eventTypes, or everything when
// eventTypes is empty.
func (h *Hub) Register(eventTypes []string) *Client {
	c := &Client{
		ID:     uuid.New().String(),
		Events: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.filter = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			c.filter[t] = struct{}{}
		}
	}

	select {
	case <-h.shutdown:
		close(c.Events)
		return c
	default:
	}
	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.Events)
	}
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. id may be empty.
func (h *Hub) Broadcast(id, eventType string, payload any) {
	if id == "" {
		id = uuid.New().String()
	}
	evt := Event{ID: id, Type: eventType, Timestamp: h.now().Unix(), Payload: payload}

	select {
	case h.broadcast <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders an event in text/event-stream framing.
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if evt.ID != "" {
		buf.WriteString("id: " + evt.ID + "\n")
	}
	buf.WriteString("event: " + evt.Type + "\n")
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}
