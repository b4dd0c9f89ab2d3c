package debounce

import (
	"sync"
	"testing"
	"time"
)

// manualClock arms timers that only fire when the test says so.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
}

func (c *manualClock) arm(_ time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &manualTimer{fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *manualClock) armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// fireLast simulates the most recently armed timer elapsing.
func (c *manualClock) fireLast() {
	c.mu.Lock()
	timer := c.timers[len(c.timers)-1]
	c.mu.Unlock()
	timer.fire()
}

// fire simulates timer i elapsing even if it was stopped late.
func (c *manualClock) fire(i int) {
	c.mu.Lock()
	timer := c.timers[i]
	c.mu.Unlock()
	timer.fire()
}

func (m *manualTimer) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimer) fire() {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func TestScheduleRunsTrailingEdgeOnly(t *testing.T) {
	clock := &manualClock{}
	task := NewWithClock(250*time.Millisecond, clock.arm)

	var calls []string
	task.Schedule(func() { calls = append(calls, "pa") })
	task.Schedule(func() { calls = append(calls, "par") })
	task.Schedule(func() { calls = append(calls, "paris") })

	if len(calls) != 0 {
		t.Fatalf("expected no leading-edge execution, got %v", calls)
	}
	if !task.Pending() {
		t.Fatalf("expected pending execution")
	}

	clock.fireLast()

	if len(calls) != 1 || calls[0] != "paris" {
		t.Fatalf("expected exactly one trailing call with final value, got %v", calls)
	}
	if task.Pending() {
		t.Fatalf("expected no pending execution after fire")
	}
}

func TestStaleTimerDoesNotRun(t *testing.T) {
	clock := &manualClock{}
	task := NewWithClock(250*time.Millisecond, clock.arm)

	var calls []string
	task.Schedule(func() { calls = append(calls, "first") })
	task.Schedule(func() { calls = append(calls, "second") })

	// First arm was superseded; even if its callback still fires it must not run.
	clock.fire(0)
	if len(calls) != 0 {
		t.Fatalf("stale timer ran: %v", calls)
	}

	clock.fire(1)
	if len(calls) != 1 || calls[0] != "second" {
		t.Fatalf("expected only the second arm to run, got %v", calls)
	}
}

func TestCancelDropsPendingExecution(t *testing.T) {
	clock := &manualClock{}
	task := NewWithClock(time.Second, clock.arm)

	ran := false
	task.Schedule(func() { ran = true })

	if !task.Cancel() {
		t.Fatalf("expected cancel to report pending work")
	}
	if task.Cancel() {
		t.Fatalf("expected second cancel to be a no-op")
	}

	clock.fire(0)
	if ran {
		t.Fatalf("cancelled execution ran")
	}
}

func TestFlushRunsImmediately(t *testing.T) {
	clock := &manualClock{}
	task := NewWithClock(time.Hour, clock.arm)

	ran := false
	task.Schedule(func() { ran = true })

	if !task.Flush() {
		t.Fatalf("expected flush to run pending work")
	}
	if !ran {
		t.Fatalf("flush did not execute the function")
	}
	if task.Flush() {
		t.Fatalf("expected nothing left to flush")
	}

	clock.fire(0)
	if clock.armed() != 1 {
		t.Fatalf("expected a single armed timer, got %d", clock.armed())
	}
}

func TestRealClockFires(t *testing.T) {
	task := New(5 * time.Millisecond)

	done := make(chan struct{})
	task.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never fired")
	}
}

func TestNilTaskIsSafe(t *testing.T) {
	var task *Task
	task.Schedule(func() {})
	if task.Cancel() || task.Flush() || task.Pending() {
		t.Fatalf("nil task should report no work")
	}
	if task.Quiet() != 0 {
		t.Fatalf("nil task quiet interval should be zero")
	}
}
