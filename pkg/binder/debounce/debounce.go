// Package debounce provides a single-slot trailing-edge scheduler: each call
// to Schedule re-arms a quiet-interval timer, and the most recently scheduled
// function runs once the interval passes without another call. Pending work
// can be cancelled or flushed explicitly.
package debounce

import (
	"sync"
	"time"
)

// Timer is the armed-timer handle the Task holds between Schedule and fire.
type Timer interface {
	Stop() bool
}

// Clock arms a one-shot timer that invokes fn after d. The default Clock is
// backed by time.AfterFunc; tests substitute one they can fire by hand.
type Clock func(d time.Duration, fn func()) Timer

func stdClock(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Task owns at most one pending execution. Schedule replaces both the timer
// and the function, so only the last scheduled function can run, and only
// after the quiet interval elapses with no further Schedule calls.
type Task struct {
	mu    sync.Mutex
	quiet time.Duration
	clock Clock

	timer   Timer
	fn      func()
	pending bool
	gen     uint64
}

// New returns a task with the given quiet interval.
func New(quiet time.Duration) *Task {
	return NewWithClock(quiet, nil)
}

// NewWithClock returns a task using clock to arm timers. A nil clock falls
// back to time.AfterFunc.
func NewWithClock(quiet time.Duration, clock Clock) *Task {
	if clock == nil {
		clock = stdClock
	}
	if quiet < 0 {
		quiet = 0
	}
	return &Task{quiet: quiet, clock: clock}
}

// Quiet reports the configured quiet interval.
func (t *Task) Quiet() time.Duration {
	if t == nil {
		return 0
	}
	return t.quiet
}

// Schedule arms the task to run fn after the quiet interval. A call while a
// previous execution is pending discards that execution and restarts the
// interval, so bursts collapse to one trailing run with the final fn.
func (t *Task) Schedule(fn func()) {
	if t == nil || fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = fn
	t.pending = true
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = t.clock(t.quiet, func() { t.fire(gen) })
}

// fire runs the pending function if this timer is still the current one. A
// stale generation means Schedule, Cancel, or Flush superseded this arm after
// the timer had already fired.
func (t *Task) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.pending {
		t.mu.Unlock()
		return
	}
	fn := t.fn
	t.fn = nil
	t.pending = false
	t.timer = nil
	t.mu.Unlock()
	fn()
}

// Cancel drops any pending execution. It reports whether one was pending.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pending {
		return false
	}
	t.fn = nil
	t.pending = false
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return true
}

// Flush runs a pending execution immediately on the calling goroutine instead
// of waiting out the quiet interval. It reports whether anything ran.
func (t *Task) Flush() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	if !t.pending {
		t.mu.Unlock()
		return false
	}
	fn := t.fn
	t.fn = nil
	t.pending = false
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
	fn()
	return true
}

// Pending reports whether an execution is armed but has not yet run.
func (t *Task) Pending() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
