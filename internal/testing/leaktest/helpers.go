// Package leaktest catches goroutines left running by background components
// after they are stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultSettle is how long Check waits for goroutines to wind down.
const DefaultSettle = time.Second

// GoroutineChecker records a goroutine baseline and later verifies the count
// returned to it.
type GoroutineChecker struct {
	before int
	settle time.Duration
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count as the baseline.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), settle: DefaultSettle, t: t}
}

// Check polls until at most tolerance goroutines remain above the baseline, and
// fails the test if the settle window runs out first.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	target := g.before + tolerance
	if n, ok := waitFor(target, g.settle); !ok {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, tolerance=%d", g.before, n, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it left goroutines behind.
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// CheckStops starts a component, lets body use it, stops it, and fails if any
// goroutine it started is still running.
func CheckStops(t testing.TB, start func(), body func(), stop func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	start()
	if body != nil {
		body()
	}
	stop()
	checker.Check(0)
}

// WaitForGoroutines waits until the goroutine count drops to target.
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()
	if n, ok := waitFor(target, timeout); !ok {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d", n, target)
	}
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(5 * time.Millisecond)
	}
}
