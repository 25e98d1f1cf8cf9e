package shipping

// Calculator quotes a shipping fee for an order goods subtotal.
type Calculator interface {
	// FeeCents returns the shipping fee for the given subtotal.
	FeeCents(subtotalCents int64) int64
}

// FlatRate charges a fixed fee below the free-shipping threshold and
// nothing at or above it.
type FlatRate struct {
	thresholdCents int64 // orders at or above this ship free
	feeCents       int64
}

// NewFlatRate creates a flat-rate shipping calculator.
func NewFlatRate(thresholdCents, feeCents int64) FlatRate {
	return FlatRate{thresholdCents: thresholdCents, feeCents: feeCents}
}

// FeeCents returns 0 when the subtotal reaches the threshold, else the flat fee.
func (r FlatRate) FeeCents(subtotalCents int64) int64 {
	if subtotalCents >= r.thresholdCents {
		return 0
	}
	return r.feeCents
}
