package clock

import "time"

// Clock is the time source for puzzle timestamps, solve timings and request
// durations
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// System reads the wall clock
type System struct{}

var _ Clock = System{}

// New returns the wall clock
func New() Clock {
	return System{}
}

// Now returns the current time in UTC so stored puzzles compare the same
// from any server
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the elapsed time since t, using the monotonic reading
// when t came from Now
func (System) Since(t time.Time) time.Duration {
	return time.Since(t)
}
