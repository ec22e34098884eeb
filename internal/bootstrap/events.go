package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/sse"
)

// EventSystem is the in-process bus plus the retrying publisher in front of it.
// Producers publish through Publisher; subscribers attach to Bus. Stream fans
// events out to HTTP clients.
type EventSystem struct {
	Bus        *event.MemoryBus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
	Stream     *sse.Hub
}

// InitializeEventSystem creates the bus, the dead-letter file and the resilient
// publisher. An empty DeadLetterPath disables dead-lettering.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	var deadLetter *event.DeadLetterWriter
	if cfg.DeadLetterPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
			return nil, fmt.Errorf(ErrMsgCreateDeadLetterFmt, err)
		}
		dl, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCreateDeadLetterFmt, err)
		}
		deadLetter = dl
	}

	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries: EventDefaultMaxRetries,
		RetryDelay: EventDefaultRetryDelay,
	}, deadLetter)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	stream := sse.NewHub()
	stream.Start()

	return &EventSystem{Bus: bus, Publisher: publisher, DeadLetter: deadLetter, Stream: stream}, nil
}
