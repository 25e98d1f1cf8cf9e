package tax

import (
	"context"
	"math"
)

// PercentageCalculator calculates tax using a simple percentage rate.
type PercentageCalculator struct {
	rate float64 // e.g., 0.18 for 18% GST
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
func NewPercentageCalculator(rate float64) Calculator {
	return &PercentageCalculator{rate: rate}
}

// CalculateTax computes tax on the goods subtotal using the configured rate,
// rounded to the nearest cent.
func (c *PercentageCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	var taxableCents int64
	for _, item := range params.LineItems {
		taxableCents += item.TotalCents
	}

	taxCents := int64(math.Round(float64(taxableCents) * c.rate))

	return &TaxResult{
		TotalTaxCents: taxCents,
		Rate:          c.rate,
		IsEstimate:    false,
	}, nil
}
