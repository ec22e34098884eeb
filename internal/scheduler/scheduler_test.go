package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FleaMarket_Go/internal/testing/leaktest"
	"github.com/osse101/FleaMarket_Go/internal/worker"
)

type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Process(ctx context.Context) error {
	j.runs.Add(1)
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	for seen := 0; seen < 2; {
		select {
		case <-job.done:
			seen++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}
	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

func TestScheduler_IgnoresZeroInterval(t *testing.T) {
	pool := worker.NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{done: make(chan struct{}, 1)}
	sched.Schedule(0, job)

	time.Sleep(30 * time.Millisecond)
	sched.Stop()
	sched.Stop()
	assert.Zero(t, job.runs.Load())
}

func TestScheduler_StopLeavesNoTickers(t *testing.T) {
	var pool *worker.Pool
	var sched *Scheduler
	leaktest.CheckStops(t,
		func() {
			pool = worker.NewPool(2, 10, time.Second)
			pool.Start()
			sched = New(pool)
		},
		func() {
			sched.Schedule(5*time.Millisecond, &countingJob{done: make(chan struct{}, 1)})
			sched.Schedule(time.Hour, &countingJob{done: make(chan struct{}, 1)})
		},
		func() {
			sched.Stop()
			pool.Stop()
		})
}
