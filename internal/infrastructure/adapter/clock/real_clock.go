package clock

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// RealClock implements the Clock port with the system clock in UTC
type RealClock struct{}

// NewRealClock creates a new system clock
func NewRealClock() core.Clock {
	return &RealClock{}
}

// Now returns the current UTC instant
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
