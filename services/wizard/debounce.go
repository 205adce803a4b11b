package wizard

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers per key into a single callback after
// the input settles. Each new trigger for a key cancels the pending timer, so
// a reactive eligibility check fires once per pause in typing rather than
// once per keystroke.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	// afterFunc is swappable in tests.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewDebouncer returns a Debouncer with the given settle delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:     delay,
		timers:    make(map[string]*time.Timer),
		afterFunc: time.AfterFunc,
	}
}

// Trigger schedules fn to run after the settle delay, replacing any pending
// run for the same key.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = d.afterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending run for the key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Stop cancels every pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
