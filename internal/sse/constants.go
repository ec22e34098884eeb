package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often an idle stream gets a ping.
const KeepaliveInterval = 30 * time.Second

// Stream-only event types. Market events keep their bus type names.
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters a stream to a comma-separated list of event types.
const QueryParamTypes = "types"

const (
	HeaderContentType   = "Content-Type"
	HeaderCacheControl  = "Cache-Control"
	HeaderConnection    = "Connection"
	ContentTypeStream   = "text/event-stream"
	CacheControlNoCache = "no-cache"
	ConnectionKeepAlive = "keep-alive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgStreamingSupport   = "Response writer cannot stream"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)

const ErrMsgStreamingUnsupported = "streaming unsupported"
