package domain

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartEmpty        = &Error{Code: EINVALID, Message: "Your cart is empty"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be at least 1"}
)

// LineItem is a single cart line. The cart holds exactly one line per
// distinct product id; repeat adds merge into the existing line.
type LineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

// SubtotalCents returns unit price times quantity for this line.
func (li LineItem) SubtotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

// Valid reports whether the line satisfies the cart invariants
// (non-empty id, non-negative price, quantity of at least 1).
func (li LineItem) Valid() bool {
	return li.ID != "" && li.PriceCents >= 0 && li.Quantity >= 1
}
