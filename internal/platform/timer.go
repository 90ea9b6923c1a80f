package platform

import "time"

// timer measures the time between ticks.
type timer struct {
	now  func() time.Time
	last time.Time
}

func newTimer(now func() time.Time) *timer {
	if now == nil {
		now = time.Now
	}
	return &timer{now: now}
}

// Tick returns the time since the previous tick, or zero on the first one.
func (t *timer) Tick() time.Duration {
	n := t.now()
	if t.last.IsZero() {
		t.last = n
		return 0
	}
	d := n.Sub(t.last)
	t.last = n
	return d
}
