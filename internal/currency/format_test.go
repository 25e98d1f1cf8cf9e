package currency_test

import (
	"testing"

	"github.com/shophub/storefront/internal/currency"
	"github.com/stretchr/testify/assert"
)

func Test_Formatter_INR(t *testing.T) {
	f := currency.NewFormatter("INR")

	tests := []struct {
		name     string
		cents    int64
		expected string
	}{
		{"small amount", 5319, "₹53.19"},
		{"zero", 0, "₹0.00"},
		{"under a thousand", 99900, "₹999.00"},
		{"thousands use indian grouping", 123456, "₹1,234.56"},
		{"lakhs", 12345678, "₹1,23,456.78"},
		{"crores", 1234567890, "₹1,23,45,678.90"},
		{"negative", -4000, "-₹40.00"},
		{"single paisa", 1, "₹0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(tt.cents))
		})
	}
}

func Test_Formatter_WesternCurrencies(t *testing.T) {
	tests := []struct {
		code     string
		cents    int64
		expected string
	}{
		{"USD", 123456, "$1,234.56"},
		{"USD", 123456789, "$1,234,567.89"},
		{"EUR", 5000, "€50.00"},
		{"GBP", 99, "£0.99"},
	}

	for _, tt := range tests {
		f := currency.NewFormatter(tt.code)
		assert.Equal(t, tt.expected, f.Format(tt.cents))
	}
}

func Test_Formatter_UnknownCodeUsesPrefix(t *testing.T) {
	f := currency.NewFormatter("aud")

	assert.Equal(t, "AUD 1,234.56", f.Format(123456))
}
