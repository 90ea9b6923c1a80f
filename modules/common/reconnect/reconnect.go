// Package reconnect paces retries against an unreliable backend.
package reconnect

import (
	"sync"
	"time"
)

// Schedule defines the backoff durations after successive failures.
var Schedule = []time.Duration{
	time.Second, time.Second, time.Second,
	5 * time.Second, 5 * time.Second, 5 * time.Second,
	15 * time.Second, 15 * time.Second, 15 * time.Second,
}

// Delay returns the backoff duration after the given number of consecutive
// failures, counting from zero. Attempts beyond the schedule wait 30 seconds.
func Delay(attempt int) time.Duration {
	if attempt < len(Schedule) {
		return Schedule[attempt]
	}
	return 30 * time.Second
}

// Gate suppresses attempts while a backoff is pending.
type Gate struct {
	// Now is the clock; time.Now when nil.
	Now func() time.Time

	mu       sync.Mutex
	failures int
	until    time.Time
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Allow reports whether an attempt may be made now.
func (g *Gate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.now().Before(g.until)
}

// Fail records a failed attempt and returns the wait before the next one.
func (g *Gate) Fail() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	d := Delay(g.failures)
	g.failures++
	g.until = g.now().Add(d)
	return d
}

// Succeed clears the failure count.
func (g *Gate) Succeed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures = 0
	g.until = time.Time{}
}

// Failures returns the number of consecutive failures.
func (g *Gate) Failures() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures
}
