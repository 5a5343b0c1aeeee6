package slotcache

import "time"

// Clock is an interface for getting the current time.
// Implementations must return times in UTC.
type Clock interface {
	Now() time.Time
}

// ClockFunc is a function type that implements the Clock interface.
type ClockFunc func() time.Time

// Now calls the function.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock is the default clock. It returns the current system time in UTC.
// Converting to UTC strips the monotonic clock reading, so entry ages follow the wall clock
// and may go negative if it is stepped back.
// Inject a Clock built on a monotonic source with WithClock when that matters.
var SystemClock Clock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})
