package await

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack-go/internal/dependencies/mocks"
)

func TestNonPositiveTimeoutFallsBackToDefault(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	assert.Equal(t, DefaultTimeout, New(clk, 0).Timeout())
	assert.Equal(t, DefaultTimeout, New(clk, -time.Second).Timeout())
	assert.Equal(t, 5*time.Second, New(clk, 5*time.Second).Timeout())
}

func TestWatchFiresWhenTimeoutElapses(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	coordinator := New(clk, 30*time.Second)

	var fired atomic.Bool
	coordinator.Arm(func() { fired.Store(true) })

	clk.Advance(29 * time.Second)
	assert.False(t, fired.Load())

	clk.Advance(time.Second)
	require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}

func TestCancelledWatchNeverFires(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	coordinator := New(clk, 30*time.Second)

	var fired atomic.Bool
	watch := coordinator.Arm(func() { fired.Store(true) })
	watch.Cancel()

	clk.Advance(time.Minute)

	// Give a fired watch goroutine a chance to run before asserting
	time.Sleep(20 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestCancelIsIdempotent(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	coordinator := New(clk, 30*time.Second)

	watch := coordinator.Arm(func() {})
	watch.Cancel()
	assert.NotPanics(t, watch.Cancel)
}

func TestExpireRunsAtMostOnce(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	coordinator := New(clk, 10*time.Second)

	var count atomic.Int32
	watch := coordinator.Arm(func() { count.Add(1) })

	clk.Advance(time.Minute)
	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Further advances and a late cancel must not re-fire
	clk.Advance(time.Minute)
	watch.Cancel()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}
