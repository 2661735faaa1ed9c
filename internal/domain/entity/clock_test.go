package entity

import "time"

// fixedClock returns a constant instant, so timestamps in tests are exact
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func testClock() fixedClock {
	return fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}
