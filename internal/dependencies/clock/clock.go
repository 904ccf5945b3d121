package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// NewTimer returns a timer that fires once after d
	NewTimer(d time.Duration) Timer
}

// Timer is a single-shot timer. The production implementation wraps
// time.Timer; the mock fires when the test clock is advanced.
type Timer interface {
	// C returns the channel the expiry time is delivered on
	C() <-chan time.Time

	// Stop prevents the timer from firing. It returns false if the timer
	// has already expired or been stopped.
	Stop() bool
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// NewTimer returns a timer backed by time.NewTimer
func (c *RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{timer: time.NewTimer(d)}
}

type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) C() <-chan time.Time {
	return t.timer.C
}

func (t *realTimer) Stop() bool {
	return t.timer.Stop()
}
