package billing

import (
	"context"

	"github.com/shophub/storefront/internal/domain"
)

// CreateOrderParams describes the gateway order to open before collecting
// payment. AmountCents is in the gateway's minor unit.
type CreateOrderParams struct {
	AmountCents int64
	Currency    string
	Receipt     string
}

// GatewayOrder is an open payment order at the gateway.
type GatewayOrder struct {
	ID          string
	KeyID       string
	AmountCents int64
	Currency    string
}

// Provider creates payment orders with a gateway.
type Provider interface {
	// CreateGatewayOrder opens an order for the given amount. Failures are
	// EPAYMENT domain errors.
	CreateGatewayOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error)
}

// Prefill seeds the gateway checkout form with known customer details.
type Prefill struct {
	Name    string
	Email   string
	Contact string
}

// CheckoutOptions configures the gateway's hosted checkout window.
type CheckoutOptions struct {
	KeyID       string
	AmountCents int64
	Currency    string
	OrderID     string
	Name        string
	Description string
	Prefill     Prefill
	ThemeColor  string
}

// Gateway runs the interactive payment step and returns the confirmation
// once the customer completes it. Cancellation and declines are EPAYMENT
// domain errors.
type Gateway interface {
	Open(ctx context.Context, opts CheckoutOptions) (*domain.PaymentConfirmation, error)
}

// PaymentError builds a payment-domain error for gateway failures.
func PaymentError(message, op string, err error) error {
	return &domain.Error{
		Code:    domain.EPAYMENT,
		Message: message,
		Op:      op,
		Err:     err,
	}
}
