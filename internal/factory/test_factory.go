package factory

import (
	"time"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/dependencies/mocks"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/ratelimit"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/auth"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/gamedata"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/leaderboard"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/services/score"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage/memory"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/testutil"
)

// Test fixtures shared by integration-style tests
const (
	TestJWTSecret  = "test-jwt-secret"
	TestGuestToken = "test-guest-token"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger(), serviceConfigs{
		auth: auth.Config{
			TokenSecret:   TestJWTSecret,
			TokenDuration: 7 * 24 * time.Hour,
		},
		score: score.Config{
			GuestToken: TestGuestToken,
		},
		leaderboard: leaderboard.DefaultConfig(),
		gamedata:    gamedata.DefaultConfig(),
	})
	app.Limiter = ratelimit.NewMemoryLimiter(mockClock, time.Minute, 1000)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
