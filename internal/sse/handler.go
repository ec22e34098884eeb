package sse

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler streams hub events to one client until it disconnects or the hub stops.
// ?types=a,b narrows the stream.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			slog.Warn(LogMsgStreamingSupport, "path", r.URL.Path)
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}
		rc := http.NewResponseController(w)
		// Streams outlive the server's write timeout.
		if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Warn(LogMsgStreamingSupport, "error", err)
		}

		w.Header().Set(HeaderContentType, ContentTypeStream)
		w.Header().Set(HeaderCacheControl, CacheControlNoCache)
		w.Header().Set(HeaderConnection, ConnectionKeepAlive)

		var eventTypes []string
		if raw := r.URL.Query().Get(QueryParamTypes); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					eventTypes = append(eventTypes, t)
				}
			}
		}

		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "filters", eventTypes, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		send := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				slog.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				slog.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]any{"client_id": client.ID, "filters": eventTypes},
		}
		if !send(connected) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-client.Events:
				if !ok {
					return
				}
				if !send(evt) {
					return
				}
			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
