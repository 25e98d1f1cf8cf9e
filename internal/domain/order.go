package domain

import "time"

// Order is an order as reported by the remote commerce API.
type Order struct {
	ID            string
	Status        string
	PaymentMethod PaymentMethod
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
	Paid          bool
	PaidAt        *time.Time
	Delivered     bool
	CreatedAt     time.Time
	Items         []LineItem
}
