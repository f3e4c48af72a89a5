package mocks

import (
	"time"

	"github.com/mcoot/playeradmin/internal/dependencies/clock"
)

// MockClock returns a fixed time until moved
type MockClock struct {
	CurrentTime time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock fixed at t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Set moves the clock to t
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
