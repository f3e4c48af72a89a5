package factory

import (
	"time"

	"github.com/mcoot/playeradmin/internal/dependencies/mocks"
	"github.com/mcoot/playeradmin/internal/services/auth"
	"github.com/mcoot/playeradmin/internal/storage/memory"
	"github.com/mcoot/playeradmin/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on memory storage with mocked clock and randomness
// and admin auth disabled
func NewTestApp() *TestApp {
	return NewTestAppWithAuth(&auth.Service{})
}

// NewTestAppWithAuth is NewTestApp with the given auth service
func NewTestAppWithAuth(authService *auth.Service) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, authService, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
