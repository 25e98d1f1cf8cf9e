package billing

import (
	"context"
	"sync"

	"github.com/shophub/storefront/internal/domain"
)

// HostedGateway bridges the interactive payment step over HTTP. Open parks
// until the storefront client, having run the gateway's hosted checkout
// window with the pending options, posts back a confirmation or a
// cancellation. One payment may be in flight at a time.
type HostedGateway struct {
	mu      sync.Mutex
	pending *CheckoutOptions
	result  chan result
}

type result struct {
	confirmation *domain.PaymentConfirmation
	err          error
}

// NewHostedGateway creates an idle hosted gateway.
func NewHostedGateway() *HostedGateway {
	return &HostedGateway{}
}

// Open publishes the checkout options and waits for the client's
// confirmation. Context cancellation abandons the payment.
func (g *HostedGateway) Open(ctx context.Context, opts CheckoutOptions) (*domain.PaymentConfirmation, error) {
	const op = "billing.HostedGateway.Open"

	g.mu.Lock()
	if g.pending != nil {
		g.mu.Unlock()
		return nil, PaymentError("another payment is already in progress", op, nil)
	}
	g.pending = &opts
	ch := make(chan result, 1)
	g.result = ch
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.pending = nil
		g.result = nil
		g.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return nil, PaymentError("payment abandoned", op, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		return res.confirmation, nil
	}
}

// Pending returns the options for the payment awaiting confirmation, or nil.
func (g *HostedGateway) Pending() *CheckoutOptions {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return nil
	}
	opts := *g.pending
	return &opts
}

// Confirm completes the pending payment with the gateway's receipt.
func (g *HostedGateway) Confirm(confirmation domain.PaymentConfirmation) error {
	return g.deliver(result{confirmation: &confirmation})
}

// Cancel fails the pending payment with a user-facing reason.
func (g *HostedGateway) Cancel(reason string) error {
	if reason == "" {
		reason = "Payment was cancelled"
	}
	return g.deliver(result{err: PaymentError(reason, "billing.HostedGateway.Cancel", nil)})
}

func (g *HostedGateway) deliver(res result) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result == nil {
		return domain.Invalid("billing.HostedGateway", "no payment in progress")
	}

	select {
	case g.result <- res:
		g.result = nil
		return nil
	default:
		return domain.Invalid("billing.HostedGateway", "payment already resolved")
	}
}
