package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing increment: elapsed time is rounded up to the next quarter hour,
// so a one second session bills 0.25h.

// QuartersPerHour is the number of billing increments in one hour
const QuartersPerHour = 4

const secondsPerQuarter = 900

// BilledQuarters rounds the elapsed time between start and end up to whole
// quarter-hour increments. Non-positive elapsed time bills zero quarters.
func BilledQuarters(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if end.Sub(start)%time.Second > 0 {
		secs++
	}
	if secs <= 0 {
		return 0
	}
	return (secs + secondsPerQuarter - 1) / secondsPerQuarter
}

// QuartersToHours converts billed quarters to hours, e.g. 3 -> 0.75.
func QuartersToHours(quarters int64) decimal.Decimal {
	return decimal.NewFromInt(quarters).Div(decimal.NewFromInt(QuartersPerHour))
}

// FormatQuarters renders billed quarters as an hours string with two
// decimal places, e.g. 5 -> "1.25".
func FormatQuarters(quarters int64) string {
	return QuartersToHours(quarters).StringFixed(MaxDecimalPlaces)
}

// ChargeCents computes the raw charge in cents for the billed quarters at
// the given hourly rate. A fractional cent rounds up, consistent with the
// ceiling on billed time.
func ChargeCents(quarters, hourlyRateCents int64) int64 {
	return decimal.NewFromInt(quarters).
		Mul(decimal.NewFromInt(hourlyRateCents)).
		Div(decimal.NewFromInt(QuartersPerHour)).
		Ceil().
		IntPart()
}
