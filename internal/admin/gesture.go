// Package admin turns rapid logo clicks into the client's admin-mode flag.
package admin

import (
	"sync"
	"time"
)

const (
	// ClickThreshold is the number of clicks inside ClickWindow that fires the gesture.
	ClickThreshold = 5
	// ClickWindow is how long a click counts towards the gesture.
	ClickWindow = 2000 * time.Millisecond
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Detector recognises ClickThreshold clicks within ClickWindow.
// A recorded click is kept while its age is strictly less than the window.
type Detector struct {
	mu        sync.Mutex
	clock     Clock
	window    time.Duration
	threshold int
	clicks    []time.Time
}

// DetectorOption customises a Detector.
type DetectorOption func(*Detector)

// WithClock replaces the wall clock.
func WithClock(c Clock) DetectorOption {
	return func(d *Detector) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithWindow overrides ClickWindow.
func WithWindow(window time.Duration) DetectorOption {
	return func(d *Detector) {
		if window > 0 {
			d.window = window
		}
	}
}

// WithThreshold overrides ClickThreshold.
func WithThreshold(n int) DetectorOption {
	return func(d *Detector) {
		if n > 0 {
			d.threshold = n
		}
	}
}

// NewDetector returns a Detector with an empty click history.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		clock:     SystemClock,
		window:    ClickWindow,
		threshold: ClickThreshold,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Click records a click at the clock's current time and reports whether the gesture fired.
// Firing clears the history, so the next gesture needs a full new run of clicks.
func (d *Detector) Click() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	kept := d.clicks[:0]
	for _, t := range d.clicks {
		age := now.Sub(t)
		if age >= 0 && age < d.window {
			kept = append(kept, t)
		}
	}
	d.clicks = append(kept, now)

	if len(d.clicks) >= d.threshold {
		d.clicks = nil
		return true
	}
	return false
}

// History returns a copy of the recorded clicks, oldest first.
func (d *Detector) History() []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Time(nil), d.clicks...)
}

// Reset forgets every recorded click.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.clicks = nil
	d.mu.Unlock()
}
