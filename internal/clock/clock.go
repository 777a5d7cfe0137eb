// Package clock abstracts time so timer-driven logic can run on virtual
// time in tests.
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

// Timer is a cancelable pending callback, matching time.AfterFunc semantics.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules a callback after a delay and returns a handle to cancel it.
type AfterFunc func(d time.Duration, f func()) Timer

// RealClock uses the actual system time
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// RealAfterFunc is the production AfterFunc backed by time.AfterFunc.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SimulatedClock allows time manipulation for testing
type SimulatedClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewSimulatedClock creates a new SimulatedClock starting at the given time
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the duration since the given time
func (c *SimulatedClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Sub(t)
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
