package domain

import "time"

// =============================================================================
// CHECKOUT DOMAIN ERRORS
// =============================================================================

var (
	ErrAuthRequired    = &Error{Code: EUNAUTHORIZED, Message: "Please login to continue"}
	ErrAddressRequired = &Error{Code: EINVALID, Message: "Shipping address is required"}
)

// PaymentMethod is the closed set of supported payment methods.
type PaymentMethod string

const (
	// PaymentMethodRazorpay pays through the online payment gateway.
	PaymentMethodRazorpay PaymentMethod = "razorpay"

	// PaymentMethodCOD pays cash on delivery; the order is created unpaid.
	PaymentMethodCOD PaymentMethod = "cod"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodCOD
}

// ShippingAddress is the delivery address collected at checkout.
// Tagged fields are required before the flow may proceed to payment.
type ShippingAddress struct {
	FullName   string `json:"fullName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone" validate:"required"`
}

// PaymentConfirmation is the gateway receipt attached to online-paid orders.
type PaymentConfirmation struct {
	GatewayOrderID string `json:"orderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature,omitempty"`
}

// OrderDraft is the fully-priced order assembled at the payment step and
// submitted to the order API. Amounts are in cents; the API client converts
// to the wire's decimal representation.
//
// Invariant: TotalCents == SubtotalCents + TaxCents + ShippingCents.
type OrderDraft struct {
	Items           []LineItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	SubtotalCents   int64
	TaxCents        int64
	ShippingCents   int64
	TotalCents      int64
	Paid            bool
	PaidAt          *time.Time           // set only when Paid
	Confirmation    *PaymentConfirmation // set only for the gateway path
}
