// Package clock abstracts the current time so expiry logic can be tested
package clock

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a Clock that returns a settable time
type Fixed struct {
	now time.Time
}

// NewFixed returns a clock stopped at now
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

// Now returns the stopped time
func (c *Fixed) Now() time.Time {
	return c.now
}

// Advance moves the clock forward
func (c *Fixed) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
