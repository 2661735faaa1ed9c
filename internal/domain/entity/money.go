package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

// Monetary values are stored as int64 cents to avoid floating point drift.
// decimal is used at the edges for parsing, formatting and billing math.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string ("10", "10.5", "10.50") and
// converts it to cents. Negative amounts and more than two decimal places
// are rejected.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount cannot be negative", errs.ErrInvalidAmount)
	}

	if d.Exponent() < -MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	cents := d.Shift(MaxDecimalPlaces)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return cents.IntPart(), nil
}

// FormatCents converts cents to a decimal string with exactly two decimal
// places, e.g. 1015 -> "10.15", -600 -> "-6.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}
