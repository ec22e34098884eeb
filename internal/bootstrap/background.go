package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/scheduler"
	"github.com/osse101/FleaMarket_Go/internal/worker"
)

// Background owns the periodic jobs and the per-trader resupply timers.
type Background struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Resupply  *worker.ResupplyWorker
	Save      *worker.SaveJob
}

// StartBackground lists every trader's stock, then starts the worker pool and
// schedules the sweep, price refresh, archive drain and save cycles.
func StartBackground(ctx context.Context, cfg *config.Config, econ *config.EconomyConfig, m *Market, publisher event.Publisher) (*Background, error) {
	resupply := worker.NewResupplyWorker(m.Traders, m.Quotas, m.Registry, m.Prices, publisher, econ.Schedule.DefaultResupply())
	if err := resupply.Start(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgStartResupplyFmt, err)
	}

	pool := worker.NewPool(cfg.WorkerPoolSize, WorkerQueueSize, WorkerJobTimeout)
	pool.Start()

	save := &worker.SaveJob{Quotas: m.Quotas, Market: m.Registry, Profiles: m.Profiles}

	sched := scheduler.New(pool)
	sched.Schedule(econ.Schedule.ExpirySweepInterval(), worker.NewSweepJob(m.Registry))
	sched.Schedule(econ.Schedule.PriceRefreshInterval(), worker.NewPriceRefreshJob(m.Prices, m.PriceFeed, publisher))
	sched.Schedule(econ.Schedule.ExpiredDrainInterval(), &worker.DrainJob{Market: m.Registry, Consumer: m.Relister})
	sched.Schedule(econ.Schedule.SaveInterval(), save)

	slog.Info(LogMsgBackgroundStarted,
		"workers", cfg.WorkerPoolSize,
		"sweep", econ.Schedule.ExpirySweepInterval(),
		"price_refresh", econ.Schedule.PriceRefreshInterval(),
		"drain", econ.Schedule.ExpiredDrainInterval(),
		"save", econ.Schedule.SaveInterval())

	return &Background{Pool: pool, Scheduler: sched, Resupply: resupply, Save: save}, nil
}
