package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager(t *testing.T) {
	t.Run("serialises the same key", func(t *testing.T) {
		lm := NewLockManager()
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			active  int
			overlap bool
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer lm.Lock("pmc-1")()

				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.False(t, overlap)
		assert.Zero(t, lm.Len(), "idle keys are released")
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		lm := NewLockManager()
		unlockA := lm.Lock("a")
		defer unlockA()

		done := make(chan struct{})
		go func() {
			lm.Lock("b")()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("lock on b waited for a")
		}
		assert.Equal(t, 1, lm.Len())
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		lm := NewLockManager()
		unlock := lm.Lock("k")
		unlock()
		unlock()
		assert.Zero(t, lm.Len())

		lm.Lock("k")()
	})
}
