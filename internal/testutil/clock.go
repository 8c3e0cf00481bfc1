package testutil

import (
	"sync"
	"time"
)

// Epoch is the first instant a SteppingClock reports by default:
// 15 October 2026, 20:00 local bar time (UTC-6).
var Epoch = time.Date(2026, time.October, 15, 20, 0, 0, 0, time.FixedZone("CST", -6*60*60))

// SteppingClock is a deterministic wall clock for tests.
//
// Each call to Now returns the previous instant advanced by a fixed step, so
// successive date stamps differ and a rerun produces the same stamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewSteppingClock creates a clock whose first Now() returns start.
// A zero start means Epoch; a zero step means one minute.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	if start.IsZero() {
		start = Epoch
	}
	if step == 0 {
		step = time.Minute
	}
	return &SteppingClock{start: start, step: step}
}

// Now returns start + calls*step and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *SteppingClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next Now() returns start again.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
