package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewPool creates a new worker pool. A non-positive jobTimeout leaves jobs unbounded.
func NewPool(workers, queueSize int, jobTimeout time.Duration) *Pool {
	return &Pool{
		workers:    max(workers, 1),
		jobQueue:   make(chan Job, queueSize),
		jobTimeout: jobTimeout,
		quit:       make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

// run processes one job. A failing or panicking job is logged and never stops the worker.
func (p *Pool) run(job Job) {
	ctx := context.Background()
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, "job", job.Name(), "panic", fmt.Sprint(r))
		}
	}()

	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job without blocking. It reports false when the queue is full or the
// pool has stopped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(context.Background()).Warn(LogMsgJobDropped, "job", job.Name())
		return false
	}
}

// Stop stops the workers and waits for running jobs to finish. Queued jobs are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
