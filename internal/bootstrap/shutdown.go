package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/server"
)

// ShutdownComponents holds everything that needs an orderly stop.
// Any field may be nil.
type ShutdownComponents struct {
	Server     *server.Server
	Background *Background
	Events     *EventSystem
	Repos      *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. Event streams, then the HTTP server (stop accepting requests)
// 2. Resupply timers and scheduled jobs
// 3. A final save while the database is still open
// 4. Event publisher (flush pending retries), then the dead-letter file
// 5. Database
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	// Open streams would hold the server's Shutdown until the deadline.
	if c.Events != nil && c.Events.Stream != nil {
		c.Events.Stream.Stop()
	}
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if bg := c.Background; bg != nil {
		if err := bg.Resupply.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
		bg.Scheduler.Stop()
		bg.Pool.Stop()
		if err := bg.Save.Process(ctx); err != nil {
			slog.Error(LogMsgFinalSaveFailed, "error", err)
		}
	}

	if ev := c.Events; ev != nil {
		slog.Info(LogMsgShuttingDownPublisher)
		if err := ev.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgPublisherShutdownFailed, "error", err)
		}
		if ev.DeadLetter != nil {
			if err := ev.DeadLetter.Close(); err != nil {
				slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
			}
		}
	}

	if err := c.Repos.Close(); err != nil {
		slog.Error(LogMsgDatabaseCloseFailed, "error", err)
	}

	slog.Info(LogMsgStopped)
}
