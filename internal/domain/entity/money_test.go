package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"1234567.89", 123456789},
			{"0.00", 0},
			{"0", 0},
			{" 25.00 ", 2500},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"   ", "Whitespace only"},
			{"-1.00", "Negative amount"},
			{"1.234", "Too many decimal places"},
			{"abc", "Non-numeric"},
			{"1,000.00", "Comma as thousands separator"},
			{"1.00.00", "Multiple decimal points"},
			{"$100", "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestFormatCents(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{10000, "100.00"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{-600, "-6.00"},
		{1015, "10.15"},
		{999999999999, "9999999999.99"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCents(tc.cents))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, input := range []string{"0.00", "0.01", "19.99", "150.00"} {
		cents, err := ParseAmount(input)
		assert.NoError(t, err)
		assert.Equal(t, input, FormatCents(cents))
	}
}
