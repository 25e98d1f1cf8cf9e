package billing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeProvider opens payment intents directly with Stripe. Used for
// deployments that collect cards through Stripe instead of a backend-managed
// gateway.
type StripeProvider struct {
	publishableKey string
	logger         *slog.Logger
}

// NewStripeProvider configures the Stripe SDK with the secret key and returns
// a provider. The publishable key is handed to the checkout window.
func NewStripeProvider(secretKey, publishableKey string, logger *slog.Logger) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		publishableKey: publishableKey,
		logger:         logger.With("component", "stripe"),
	}
}

// CreateGatewayOrder creates a payment intent for the given amount. The
// receipt doubles as the idempotency key so a retried attempt reuses the
// same intent.
func (p *StripeProvider) CreateGatewayOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	const op = "billing.StripeProvider.CreateGatewayOrder"

	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(strings.ToLower(params.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	if params.Receipt != "" {
		intentParams.IdempotencyKey = stripe.String(params.Receipt)
		intentParams.AddMetadata("receipt", params.Receipt)
	}

	intent, err := paymentintent.New(intentParams)
	if err != nil {
		p.logger.Error("failed to create payment intent", "error", err, "amount_cents", params.AmountCents)
		return nil, PaymentError("failed to create payment intent", op, err)
	}

	p.logger.Info("payment intent created", "intent_id", intent.ID, "amount_cents", params.AmountCents)

	return &GatewayOrder{
		ID:          intent.ID,
		KeyID:       p.publishableKey,
		AmountCents: intent.Amount,
		Currency:    strings.ToUpper(string(intent.Currency)),
	}, nil
}
