package pricing

import (
	"context"
	"fmt"

	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/shipping"
	"github.com/shophub/storefront/internal/tax"
)

// Config is the single pricing configuration for a deployment. The same
// values apply at every call site (cart summary, checkout, payment); the
// threshold, fee, and rate are never hard-coded per view.
type Config struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
	TaxRate                    float64
}

// Quote is the derived cost breakdown for a cart.
// TotalCents always equals SubtotalCents + ShippingCents + TaxCents.
type Quote struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64
}

// Calculator derives order totals from cart line items. It is pure: quoting
// has no side effects, and quoting the same cart twice yields identical
// results.
type Calculator struct {
	shipping shipping.Calculator
	tax      tax.Calculator
}

// NewCalculator builds a calculator from the deployment pricing config,
// using flat-rate shipping and percentage tax.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{
		shipping: shipping.NewFlatRate(cfg.FreeShippingThresholdCents, cfg.FlatShippingFeeCents),
		tax:      tax.NewPercentageCalculator(cfg.TaxRate),
	}
}

// New builds a calculator from explicit shipping and tax implementations.
func New(ship shipping.Calculator, taxCalc tax.Calculator) *Calculator {
	return &Calculator{shipping: ship, tax: taxCalc}
}

// QuoteItems prices the given cart lines:
//
//	subtotal = Σ price × quantity
//	shipping = 0 at/above the free-shipping threshold, else the flat fee
//	tax      = round(subtotal × rate)
//	total    = subtotal + shipping + tax
func (c *Calculator) QuoteItems(ctx context.Context, items []domain.LineItem) (*Quote, error) {
	var subtotalCents int64
	lineItems := make([]tax.LineItem, len(items))
	for i, item := range items {
		lineCents := item.SubtotalCents()
		subtotalCents += lineCents
		lineItems[i] = tax.LineItem{
			Description:    item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.PriceCents,
			TotalCents:     lineCents,
		}
	}

	shippingCents := c.shipping.FeeCents(subtotalCents)

	taxResult, err := c.tax.CalculateTax(ctx, tax.TaxParams{LineItems: lineItems})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax: %w", err)
	}

	return &Quote{
		SubtotalCents: subtotalCents,
		ShippingCents: shippingCents,
		TaxCents:      taxResult.TotalTaxCents,
		TotalCents:    subtotalCents + shippingCents + taxResult.TotalTaxCents,
	}, nil
}
