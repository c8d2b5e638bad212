package domain

import "time"

// Clock provides the current time. Implementations may be real (production)
// or deterministic (testing). Every "now" read in this module goes through a
// Clock so that the wall clock never leaks into pure calendar arithmetic.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
// It is a zero-allocation implementation (empty struct).
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time {
	return time.Now()
}

// NowUnixMillis returns the current wall clock as milliseconds since the Unix epoch.
func NowUnixMillis(c Clock) int64 {
	return c.Now().UTC().UnixMilli()
}

// NowUnixNanos returns the current wall clock as nanoseconds since the Unix epoch.
// Readings before 1970 are clamped to zero.
func NowUnixNanos(c Clock) uint64 {
	ns := c.Now().UnixNano()
	if ns < 0 {
		return 0
	}
	return uint64(ns)
}

// OrReal returns c, or RealClock when c is nil.
func OrReal(c Clock) Clock {
	if c == nil {
		return RealClock{}
	}
	return c
}

// Ensure RealClock implements Clock at compile time.
var _ Clock = RealClock{}
