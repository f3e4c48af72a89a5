package clock

import "time"

// Clock reports the current time. The seed generator uses it as the upper
// bound for generated birthdays.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}
