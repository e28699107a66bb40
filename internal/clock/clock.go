// Package clock abstracts wall time so streaks and reminders can be driven
// deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since the given time
	Since(t time.Time) time.Duration
}

// Real uses the system time, normalised to UTC
type Real struct{}

// NewReal creates a new Real clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current system time in UTC
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the duration since the given time
func (Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Simulated allows time manipulation in tests. Safe for concurrent use.
type Simulated struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulated creates a Simulated clock starting at the given time
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{current: start.UTC()}
}

// Now returns the simulated current time
func (c *Simulated) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration since the given time
func (c *Simulated) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the simulated time forward by the given duration
func (c *Simulated) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the simulated time forward by whole days
func (c *Simulated) AdvanceDays(days int) {
	c.Advance(time.Duration(days) * 24 * time.Hour)
}

// Set jumps to the given instant
func (c *Simulated) Set(t time.Time) {
	c.mu.Lock()
	c.current = t.UTC()
	c.mu.Unlock()
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of UTC calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
