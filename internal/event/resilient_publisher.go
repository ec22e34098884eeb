package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// ResilientPublisher wraps a Bus with background retries and a dead-letter file.
// A failed publish is accepted for retry and never fails the caller.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter

	wg     sync.WaitGroup
	stop   chan struct{}
	once   sync.Once
	closed bool
	mu     sync.Mutex
}

// NewResilientPublisher creates a new ResilientPublisher. deadLetter may be nil.
func NewResilientPublisher(inner Bus, config ResilientConfig, deadLetter *DeadLetterWriter) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelay
	}
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: deadLetter,
		stop:       make(chan struct{}),
	}
}

// Publish delivers synchronously; on failure it schedules retries and returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		logger.FromContext(ctx).Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "error", err)
		p.writeDeadLetter(event, 1, err)
		return nil
	}
	p.wg.Add(1)
	p.mu.Unlock()

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	go p.retryLoop(event, err)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		timer := time.NewTimer(CalculateRetryDelay(p.config.RetryDelay, attempt))
		select {
		case <-p.stop:
			timer.Stop()
			logger.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type, "attempt", attempt)
			p.writeDeadLetter(event, attempt, lastErr)
			return
		case <-timer.C:
		}

		if lastErr = p.inner.Publish(ctx, event); lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", attempt)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", attempt, "error", lastErr)
	}

	logger.Error(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", p.config.MaxRetries)
	p.writeDeadLetter(event, p.config.MaxRetries+1, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown aborts pending retries, dead-lettering their events, and waits for them to finish.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.once.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
