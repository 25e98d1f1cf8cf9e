package billing

import (
	"context"
	"sync"

	"github.com/shophub/storefront/internal/domain"
)

// MockProvider is a test double for Provider.
type MockProvider struct {
	mu sync.Mutex

	// OrderFunc, when set, handles CreateGatewayOrder.
	OrderFunc func(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error)

	// Calls records every params value passed in.
	Calls []CreateOrderParams
}

func (m *MockProvider) CreateGatewayOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, params)
	m.mu.Unlock()

	if m.OrderFunc != nil {
		return m.OrderFunc(ctx, params)
	}
	return &GatewayOrder{
		ID:          "order_mock",
		KeyID:       "key_mock",
		AmountCents: params.AmountCents,
		Currency:    params.Currency,
	}, nil
}

// MockGateway is a test double for Gateway.
type MockGateway struct {
	mu sync.Mutex

	// OpenFunc, when set, handles Open.
	OpenFunc func(ctx context.Context, opts CheckoutOptions) (*domain.PaymentConfirmation, error)

	// Calls records every options value passed in.
	Calls []CheckoutOptions
}

func (m *MockGateway) Open(ctx context.Context, opts CheckoutOptions) (*domain.PaymentConfirmation, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, opts)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts)
	}
	return &domain.PaymentConfirmation{
		GatewayOrderID: opts.OrderID,
		PaymentID:      "pay_mock",
		Signature:      "sig_mock",
	}, nil
}
