package pricing_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Calculator_QuoteItems(t *testing.T) {
	// ₹50 threshold, ₹9.99 fee, 8% tax
	calc := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: 5000,
		FlatShippingFeeCents:       999,
		TaxRate:                    0.08,
	})

	items := []domain.LineItem{
		{ID: "p1", Name: "Widget", PriceCents: 2000, Quantity: 2},
	}

	quote, err := calc.QuoteItems(context.Background(), items)

	require.NoError(t, err)
	assert.Equal(t, int64(4000), quote.SubtotalCents, "2 * 2000")
	assert.Equal(t, int64(999), quote.ShippingCents, "4000 is below the 5000 threshold")
	assert.Equal(t, int64(320), quote.TaxCents, "4000 * 0.08, shipping untaxed")
	assert.Equal(t, int64(5319), quote.TotalCents, "4000 + 999 + 320")
}

func Test_Calculator_EmptyCart(t *testing.T) {
	calc := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: 50000,
		FlatShippingFeeCents:       4000,
		TaxRate:                    0.18,
	})

	quote, err := calc.QuoteItems(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.SubtotalCents)
	assert.Equal(t, int64(4000), quote.ShippingCents, "Flat fee applies even to an empty cart quote")
	assert.Equal(t, int64(0), quote.TaxCents)
	assert.Equal(t, int64(4320), quote.TotalCents)
}

// Test_Calculator_ShippingUntaxed verifies the free shipping boundary: an
// order exactly at the threshold pays no shipping and tax on goods only.
func Test_Calculator_ShippingUntaxed(t *testing.T) {
	calc := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: 50000,
		FlatShippingFeeCents:       4000,
		TaxRate:                    0.18,
	})

	items := []domain.LineItem{
		{ID: "p1", Name: "Widget", PriceCents: 50000, Quantity: 1},
	}

	quote, err := calc.QuoteItems(context.Background(), items)

	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.ShippingCents)
	assert.Equal(t, int64(9000), quote.TaxCents, "50000 * 0.18")
	assert.Equal(t, int64(59000), quote.TotalCents)
}

// Test_Calculator_TotalIdentity verifies that the total always equals the sum
// of its parts across randomized carts.
func Test_Calculator_TotalIdentity(t *testing.T) {
	calc := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: 50000,
		FlatShippingFeeCents:       4000,
		TaxRate:                    0.18,
	})

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		lines := rng.Intn(21)
		items := make([]domain.LineItem, lines)
		var subtotal int64
		for j := range items {
			items[j] = domain.LineItem{
				ID:         fmt.Sprintf("p%d", j),
				PriceCents: int64(rng.Intn(100000)),
				Quantity:   1 + rng.Intn(10),
			}
			subtotal += items[j].SubtotalCents()
		}

		quote, err := calc.QuoteItems(context.Background(), items)
		require.NoError(t, err)

		assert.Equal(t, subtotal, quote.SubtotalCents)
		assert.Equal(t, quote.SubtotalCents+quote.ShippingCents+quote.TaxCents, quote.TotalCents,
			"total must equal subtotal + shipping + tax")
		assert.Equal(t, int64(math.Round(float64(subtotal)*0.18)), quote.TaxCents,
			"tax derives from the goods subtotal only")
	}
}

// Test_Calculator_Idempotent verifies that quoting is pure.
func Test_Calculator_Idempotent(t *testing.T) {
	calc := pricing.NewCalculator(pricing.Config{
		FreeShippingThresholdCents: 50000,
		FlatShippingFeeCents:       4000,
		TaxRate:                    0.18,
	})

	items := []domain.LineItem{
		{ID: "p1", PriceCents: 12345, Quantity: 3},
		{ID: "p2", PriceCents: 678, Quantity: 1},
	}

	first, err := calc.QuoteItems(context.Background(), items)
	require.NoError(t, err)
	second, err := calc.QuoteItems(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
