package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shophub/storefront/internal/billing"
	"github.com/shophub/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HostedGateway_ConfirmCompletesOpen(t *testing.T) {
	gateway := billing.NewHostedGateway()

	opts := billing.CheckoutOptions{OrderID: "order_rzp", AmountCents: 8720, Currency: "INR"}
	done := make(chan struct{})
	var confirmation *domain.PaymentConfirmation
	var openErr error
	go func() {
		confirmation, openErr = gateway.Open(context.Background(), opts)
		close(done)
	}()

	// Wait for the payment to be published to the client.
	require.Eventually(t, func() bool {
		return gateway.Pending() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "order_rzp", gateway.Pending().OrderID)

	require.NoError(t, gateway.Confirm(domain.PaymentConfirmation{
		GatewayOrderID: "order_rzp",
		PaymentID:      "pay_1",
		Signature:      "sig",
	}))

	<-done
	require.NoError(t, openErr)
	assert.Equal(t, "pay_1", confirmation.PaymentID)
	assert.Nil(t, gateway.Pending(), "resolved payment is no longer pending")
}

func Test_HostedGateway_CancelFailsOpen(t *testing.T) {
	gateway := billing.NewHostedGateway()

	done := make(chan error, 1)
	go func() {
		_, err := gateway.Open(context.Background(), billing.CheckoutOptions{OrderID: "o1"})
		done <- err
	}()

	require.Eventually(t, func() bool {
		return gateway.Pending() != nil
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, gateway.Cancel(""))

	err := <-done
	require.Error(t, err)
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
	assert.Equal(t, "Payment was cancelled", domain.ErrorMessage(err))
}

func Test_HostedGateway_ContextCancellationAbandons(t *testing.T) {
	gateway := billing.NewHostedGateway()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := gateway.Open(ctx, billing.CheckoutOptions{OrderID: "o1"})
		done <- err
	}()

	require.Eventually(t, func() bool {
		return gateway.Pending() != nil
	}, time.Second, 5*time.Millisecond)

	cancel()

	err := <-done
	require.Error(t, err)
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))
	assert.Nil(t, gateway.Pending())
}

func Test_HostedGateway_ConfirmWithoutPendingPayment(t *testing.T) {
	gateway := billing.NewHostedGateway()

	err := gateway.Confirm(domain.PaymentConfirmation{PaymentID: "pay_1"})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func Test_HostedGateway_OnePaymentAtATime(t *testing.T) {
	gateway := billing.NewHostedGateway()

	done := make(chan struct{})
	go func() {
		gateway.Open(context.Background(), billing.CheckoutOptions{OrderID: "o1"})
		close(done)
	}()

	require.Eventually(t, func() bool {
		return gateway.Pending() != nil
	}, time.Second, 5*time.Millisecond)

	_, err := gateway.Open(context.Background(), billing.CheckoutOptions{OrderID: "o2"})
	require.Error(t, err)
	assert.Equal(t, domain.EPAYMENT, domain.ErrorCode(err))

	require.NoError(t, gateway.Confirm(domain.PaymentConfirmation{PaymentID: "pay_1"}))
	<-done
}
