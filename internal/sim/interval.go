package sim

import "time"

// Interval fires at a fixed wall-clock period for hosts that can only poll
// from their frame callback. It never fires more than once per poll; after a
// long stall the schedule restarts from the poll time.
type Interval struct {
	Every time.Duration
	next  time.Duration
	armed bool
}

func NewInterval(every time.Duration) *Interval {
	return &Interval{Every: every}
}

// Start schedules the first firing one period after now.
func (iv *Interval) Start(now time.Duration) {
	iv.next = now + iv.Every
	iv.armed = true
}

// Due reports whether the interval fired at now.
func (iv *Interval) Due(now time.Duration) bool {
	if !iv.armed {
		iv.Start(now)
		return false
	}
	if now < iv.next {
		return false
	}
	iv.next += iv.Every
	if iv.next <= now {
		iv.next = now + iv.Every
	}
	return true
}

// Next is the time of the next firing.
func (iv *Interval) Next() time.Duration { return iv.next }
