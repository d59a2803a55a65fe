package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration collapses the bursts of events editors emit when
// saving a file atomically.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback after a quiet
// period.
type Debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn after the quiet period, resetting the clock if a
// trigger is already pending. Only the last fn passed wins.
func (db *Debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, fn)
}

// Cancel stops any pending trigger.
func (db *Debouncer) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
