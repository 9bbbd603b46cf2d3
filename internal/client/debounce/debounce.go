// Package debounce implements a trailing debouncer: a burst of triggers
// collapses into a single call timed from the last trigger.
package debounce

import (
	"sync"
	"time"
)

// Debouncer calls fn once the window has passed without a new Trigger.
type Debouncer struct {
	timer   *time.Timer
	fn      func()
	window  time.Duration
	gen     uint64
	mu      sync.Mutex
	pending bool
	stopped bool
}

// New creates a debouncer for fn.
func New(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger cancels any scheduled call and schedules a new one window from now.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire вызывается таймером; устаревшие таймеры игнорируются по номеру поколения
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()

	d.fn()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs a scheduled call immediately on the calling goroutine.
// It reports whether a call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.fn()
	return true
}

// Stop cancels a scheduled call and makes further triggers no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
}
