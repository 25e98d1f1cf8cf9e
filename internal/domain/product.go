package domain

// Product is a catalog entry served by the remote commerce API.
// Views read products to build cart line items; the storefront never
// mutates the catalog.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Image        string
	PriceCents   int64
	Rating       float64
	CountInStock int
}

// LineItem converts a product into a cart line with the given quantity.
// A quantity below 1 is treated as 1.
func (p Product) LineItem(quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Image:      p.Image,
		Quantity:   quantity,
	}
}
