package tax

import "context"

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator.
type Calculator interface {
	// CalculateTax computes tax for the order's line items.
	// Tax applies to goods only; shipping is untaxed.
	CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// TaxParams contains all information needed for tax calculation.
type TaxParams struct {
	LineItems []LineItem
}

// LineItem represents a single item being taxed.
type LineItem struct {
	Description    string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
}

// TaxResult contains the calculated tax amount.
type TaxResult struct {
	TotalTaxCents int64
	Rate          float64
	IsEstimate    bool
}
