// Package debounce provides a cancellable-timer abstraction: rapid calls
// collapse into a single invocation of the wrapped function once the caller
// has been quiet for the configured interval.
package debounce

import (
	"sync"
	"time"
)

// DefaultInterval matches the booking-form suggestion refresh cadence.
const DefaultInterval = 300 * time.Millisecond

// Debouncer coalesces bursts of Trigger calls. Each call cancels the pending
// timer and restarts it, so only the last call in a burst fires. Safe for
// concurrent use.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer with the given interval.
// A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the quiet interval, discarding any
// previously scheduled call. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending call. It does not wait for a call that has
// already started.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
