package factory

import (
	"time"

	"github.com/cardroom/blackjack-go/internal/dependencies/mocks"
	"github.com/cardroom/blackjack-go/internal/services/auth"
	"github.com/cardroom/blackjack-go/internal/services/economy"
	"github.com/cardroom/blackjack-go/internal/storage/memory"
	"github.com/cardroom/blackjack-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithAuth(auth.Config{})
}

// NewTestAppWithAuth creates a test App with a specific auth configuration
func NewTestAppWithAuth(authCfg auth.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		economy.DefaultConfig(),
		authCfg,
		0,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
