package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// BaseWorker tracks one pending timer per key plus the executions they started.
type BaseWorker struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[string]*time.Timer)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// registerTimer replaces any pending timer for key. It reports false after shutdown.
func (w *BaseWorker) registerTimer(key string, timer *time.Timer) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		timer.Stop()
		return false
	}
	if old, ok := w.timers[key]; ok {
		old.Stop()
	}
	w.timers[key] = timer
	return true
}

// begin marks an execution as in flight. It reports false after shutdown.
func (w *BaseWorker) begin() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.wg.Add(1)
	return true
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	for key, timer := range w.timers {
		timer.Stop()
		log.Info(LogMsgCancelledResupply, "trader_id", key)
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
