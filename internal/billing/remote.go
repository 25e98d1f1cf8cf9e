package billing

import (
	"context"

	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/domain"
)

// RemoteProvider creates gateway orders through the storefront backend, which
// holds the gateway credentials. This is how Razorpay orders are opened.
type RemoteProvider struct {
	api     *api.Client
	gateway string
}

// NewRemoteProvider creates a provider for the named gateway, e.g. "razorpay".
func NewRemoteProvider(client *api.Client, gateway string) *RemoteProvider {
	return &RemoteProvider{api: client, gateway: gateway}
}

// CreateGatewayOrder asks the backend to open a gateway order.
func (p *RemoteProvider) CreateGatewayOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	const op = "billing.RemoteProvider.CreateGatewayOrder"

	order, err := p.api.CreateGatewayOrder(ctx, p.gateway, params.AmountCents, params.Receipt)
	if err != nil {
		if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			return nil, err
		}
		return nil, PaymentError("failed to create payment order", op, err)
	}

	currency := order.Currency
	if currency == "" {
		currency = params.Currency
	}

	return &GatewayOrder{
		ID:          order.OrderID,
		KeyID:       order.KeyID,
		AmountCents: order.AmountCents,
		Currency:    currency,
	}, nil
}
