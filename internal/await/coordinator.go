// Package await provides the bounded wait used while a session is
// suspended on a player decision. The coordinator owns the timeout policy;
// the table controller owns what happens when it expires.
package await

import (
	"sync"
	"time"

	"github.com/cardroom/blackjack-go/internal/dependencies/clock"
)

// DefaultTimeout is how long a session waits for a hit/stand decision
const DefaultTimeout = 60 * time.Second

// Coordinator arms cancellable decision watches over an injected clock,
// so production timers and a test-controlled clock are interchangeable.
type Coordinator struct {
	clock   clock.Clock
	timeout time.Duration
}

// New creates a Coordinator. A non-positive timeout falls back to DefaultTimeout.
func New(clk clock.Clock, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{clock: clk, timeout: timeout}
}

// Timeout returns the decision timeout
func (c *Coordinator) Timeout() time.Duration {
	return c.timeout
}

// Arm starts a watch that invokes onExpire once the decision timeout
// elapses, unless the watch is cancelled first. onExpire runs at most once,
// on the watch's own goroutine.
func (c *Coordinator) Arm(onExpire func()) *Watch {
	w := &Watch{
		timer:  c.clock.NewTimer(c.timeout),
		cancel: make(chan struct{}),
	}
	go func() {
		select {
		case <-w.timer.C():
			onExpire()
		case <-w.cancel:
		}
	}()
	return w
}

// Watch is a single armed decision timeout
type Watch struct {
	timer  clock.Timer
	cancel chan struct{}
	once   sync.Once
}

// Cancel stops the watch and releases its goroutine. Safe to call more
// than once; a watch whose timer already fired is a no-op to cancel.
func (w *Watch) Cancel() {
	w.once.Do(func() {
		w.timer.Stop()
		close(w.cancel)
	})
}
