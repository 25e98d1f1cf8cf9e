package tax_test

import (
	"context"
	"testing"

	"github.com/shophub/storefront/internal/tax"
	"github.com/stretchr/testify/assert"
)

// Test_PercentageCalculator_GSTExample validates the standard 18% GST case:
// goods subtotal ₹100.00 (10000 cents) * 0.18 = ₹18.00 (1800 cents).
func Test_PercentageCalculator_GSTExample(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.18)

	params := tax.TaxParams{
		LineItems: []tax.LineItem{
			{
				Description:    "Test Product",
				Quantity:       2,
				UnitPriceCents: 5000,
				TotalCents:     10000,
			},
		},
	}

	result, err := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1800), result.TotalTaxCents, "10000 * 0.18 = 1800 cents")
	assert.Equal(t, 0.18, result.Rate)
	assert.False(t, result.IsEstimate, "Percentage calculator provides exact amounts")
}

// Test_PercentageCalculator_DifferentTaxRates validates calculation accuracy across various rates
func Test_PercentageCalculator_DifferentTaxRates(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		subtotal    int64
		expectedTax int64
		explanation string
	}{
		{
			name:        "zero percent rate",
			rate:        0.0,
			subtotal:    10000,
			expectedTax: 0,
			explanation: "No tax when rate is zero",
		},
		{
			name:        "eighteen percent GST",
			rate:        0.18,
			subtotal:    5319,
			expectedTax: 957,
			explanation: "5319 * 0.18 = 957.42, rounds to 957",
		},
		{
			name:        "rounds half up",
			rate:        0.05,
			subtotal:    1010,
			expectedTax: 51,
			explanation: "1010 * 0.05 = 50.5, rounds to 51",
		},
		{
			name:        "rounds down below half",
			rate:        0.08,
			subtotal:    1005,
			expectedTax: 80,
			explanation: "1005 * 0.08 = 80.4, rounds to 80",
		},
		{
			name:        "empty cart",
			rate:        0.18,
			subtotal:    0,
			expectedTax: 0,
			explanation: "No tax on nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tax.NewPercentageCalculator(tt.rate)

			params := tax.TaxParams{}
			if tt.subtotal > 0 {
				params.LineItems = []tax.LineItem{
					{Description: "Item", Quantity: 1, UnitPriceCents: tt.subtotal, TotalCents: tt.subtotal},
				}
			}

			result, err := calc.CalculateTax(context.Background(), params)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTax, result.TotalTaxCents, tt.explanation)
		})
	}
}

// Test_PercentageCalculator_SumsAcrossLines validates that tax applies to the
// combined goods total, not per line.
func Test_PercentageCalculator_SumsAcrossLines(t *testing.T) {
	calc := tax.NewPercentageCalculator(0.18)

	params := tax.TaxParams{
		LineItems: []tax.LineItem{
			{Description: "A", Quantity: 1, UnitPriceCents: 333, TotalCents: 333},
			{Description: "B", Quantity: 3, UnitPriceCents: 111, TotalCents: 333},
			{Description: "C", Quantity: 1, UnitPriceCents: 334, TotalCents: 334},
		},
	}

	result, err := calc.CalculateTax(context.Background(), params)

	assert.NoError(t, err)
	assert.Equal(t, int64(180), result.TotalTaxCents, "(333 + 333 + 334) * 0.18 = 180")
}

func Test_NoTaxCalculator_AlwaysZero(t *testing.T) {
	calc := tax.NewNoTaxCalculator()

	result, err := calc.CalculateTax(context.Background(), tax.TaxParams{
		LineItems: []tax.LineItem{
			{Description: "Item", Quantity: 5, UnitPriceCents: 9999, TotalCents: 49995},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalTaxCents)
	assert.Equal(t, 0.0, result.Rate)
}
