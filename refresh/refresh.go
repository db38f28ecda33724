// Package refresh provides the debounce used by auto-refreshing list
// views: filter changes schedule a delayed re-fetch, a newer change
// replaces a not-yet-fired one, and completions from superseded fetches
// are discarded so a late response can never overwrite state reflecting
// a newer filter.
package refresh

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into one delayed fetch
// (last-write-wins). It does not cancel in-flight transport work; a
// superseded fetch still runs to completion and its result is rejected
// by the sequence check instead.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewDebouncer returns a Debouncer with the given delay window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fetch to run after the delay window. A pending,
// not-yet-fired fetch from an earlier Trigger is replaced. fetch
// receives a sequence token to pass to Latest when its result arrives.
func (d *Debouncer) Trigger(fetch func(seq uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { fetch(seq) })
}

// Latest reports whether seq identifies the most recent trigger. A
// fetch whose completion arrives with a stale token must discard its
// result.
func (d *Debouncer) Latest(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}

// Stop cancels any pending fetch and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
