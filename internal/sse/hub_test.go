package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/testing/leaktest"
)

const waitFor = time.Second

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, waitFor, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.Events:
		return evt
	case <-time.After(waitFor):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubBroadcast(t *testing.T) {
	h := startHub(t)

	all := h.Register(nil)
	sold := h.Register([]string{string(event.ItemSold)})
	waitClients(t, h, 2)

	h.Broadcast("evt-1", string(event.ItemBought), "bought")
	h.Broadcast("evt-2", string(event.ItemSold), "sold")

	// CASE 1: BEST CASE - unfiltered client sees both, in order
	assert.Equal(t, "evt-1", receive(t, all).ID)
	assert.Equal(t, "evt-2", receive(t, all).ID)

	// CASE 2: filtered client sees only its type
	got := receive(t, sold)
	assert.Equal(t, "evt-2", got.ID)
	assert.Equal(t, "sold", got.Payload)
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	h := startHub(t)
	c := h.Register(nil)
	waitClients(t, h, 1)

	h.Unregister(c.ID)
	waitClients(t, h, 0)

	_, open := <-c.Events
	assert.False(t, open)
}

func TestHubStopIsIdempotentAndLeakFree(t *testing.T) {
	var h *Hub
	var c *Client
	leaktest.CheckStops(t,
		func() {
			h = NewHub()
			h.Start()
		},
		func() {
			c = h.Register(nil)
			waitClients(t, h, 1)
		},
		func() {
			h.Stop()
			h.Stop()
		})

	_, open := <-c.Events
	assert.False(t, open)

	late := h.Register(nil)
	_, open = <-late.Events
	assert.False(t, open, "registering after stop yields a closed channel")
}

func TestBroadcastGeneratesIDs(t *testing.T) {
	h := startHub(t)
	c := h.Register(nil)
	waitClients(t, h, 1)

	h.Broadcast("", EventTypeKeepalive, nil)
	assert.NotEmpty(t, receive(t, c).ID)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "item.sold", Timestamp: 1, Payload: map[string]int{"n": 2}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: abc\nevent: item.sold\ndata: {"))
	assert.Contains(t, s, `"payload":{"n":2}`)
	assert.True(t, strings.HasSuffix(s, "\n\n"))

	keepalive, err := FormatSSEMessage(Event{Type: EventTypeKeepalive})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(keepalive), "event: keepalive\n"), "empty ids are omitted")
}

func TestSubscriberForwardsBusEvents(t *testing.T) {
	h := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(h, bus).Subscribe()

	c := h.Register(nil)
	waitClients(t, h, 1)

	evt := event.NewItemSoldEvent(domain.ItemSoldPayload{SellerID: "seller", ItemCount: 2})
	require.NoError(t, bus.Publish(context.Background(), evt))

	got := receive(t, c)
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, string(event.ItemSold), got.Type)
	assert.Equal(t, 2, got.Payload.(domain.ItemSoldPayload).ItemCount)
}

func TestHandlerStreams(t *testing.T) {
	h := startHub(t)
	srv := httptest.NewServer(Handler(h))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=item.sold,%20item.bought", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, ContentTypeStream, resp.Header.Get(HeaderContentType))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), "event: ") {
				return strings.TrimPrefix(lines.Text(), "event: ")
			}
		}
		return ""
	}

	assert.Equal(t, EventTypeConnected, next())
	waitClients(t, h, 1)

	h.Broadcast("", string(event.OfferExpired), nil)
	h.Broadcast("", string(event.ItemBought), nil)
	assert.Equal(t, string(event.ItemBought), next(), "filtered types are skipped")

	cancel()
	waitClients(t, h, 0)
}
