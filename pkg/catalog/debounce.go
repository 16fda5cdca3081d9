package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last keystroke and the committed
// search.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces a rapid sequence of values into a single commit.
// Each Update cancels the previous pending commit and schedules a new one,
// so only the final value of a burst is delivered. The zero value is not
// usable; construct with NewDebouncer.
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	armed   bool
	stopped bool
}

// NewDebouncer returns a debouncer that calls commit with the latest value
// once delay has elapsed without further updates. A non-positive delay falls
// back to DefaultDebounce.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Delay returns the configured debounce delay.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Update schedules value for commit, cancelling any pending one.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = value
	d.armed = true
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush commits the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Cancel drops any pending commit without disabling the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending commit and discards all future updates.
// Safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire delivers the pending value exactly once: the armed flag is cleared
// under the lock, so a timer expiry racing a Flush results in one commit.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	value := d.pending
	d.mu.Unlock()
	d.commit(value)
}
