package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FleaMarket_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
	panics   bool
	block    chan struct{}
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		<-j.block
	}
	atomic.AddInt32(j.executed, 1)
	if j.panics {
		panic("boom")
	}
	return j.err
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10, time.Second)
	pool.Start()

	// CASE 1: BEST CASE - jobs run
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	// CASE 2: WORST CASE - failing and panicking jobs do not kill the workers
	assert.True(t, pool.Enqueue(&testJob{executed: &executed, err: errors.New("nope")}))
	assert.True(t, pool.Enqueue(&testJob{executed: &executed, panics: true}))
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 4 }, time.Second, 5*time.Millisecond)
	pool.Stop()

	// CASE 3: EDGE CASE - a stopped pool refuses work and Stop is idempotent
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	pool.Stop()
}

func TestPool_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	var executed int32
	block := make(chan struct{})
	pool := NewPool(1, 1, 0)
	pool.Start()

	assert.True(t, pool.Enqueue(&testJob{executed: &executed, block: block}))
	// Wait until the worker holds the first job so the queue slot is free
	time.Sleep(20 * time.Millisecond)
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}), "queue is full")

	close(block)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 }, time.Second, 5*time.Millisecond)
	pool.Stop()
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	var executed int32
	var pool *Pool
	leaktest.CheckStops(t,
		func() {
			pool = NewPool(4, 10, time.Second)
			pool.Start()
		},
		func() {
			pool.Enqueue(&testJob{executed: &executed})
			assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 1 }, time.Second, 5*time.Millisecond)
		},
		func() { pool.Stop() })
}
