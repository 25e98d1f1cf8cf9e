package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTokens is a hand-rolled TokenSource for tests.
type fakeTokens struct {
	token       string
	invalidated int
}

func (f *fakeTokens) Token() string { return f.token }

func (f *fakeTokens) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.token = ""
	return nil
}

func newClient(t *testing.T, handler http.HandlerFunc, tokens api.TokenSource) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(api.Config{BaseURL: server.URL, Timeout: 5 * time.Second}, tokens, discardLogger())
}

func Test_Client_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}, &fakeTokens{token: "jwt-abc"})

	_, err := client.MyOrders(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-abc", gotAuth)
}

func Test_Client_NoHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}, &fakeTokens{token: ""})

	_, err := client.ListProducts(context.Background(), "", "")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func Test_Client_UnauthorizedInvalidatesSession(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized, token failed"})
	}, tokens)

	_, err := client.MyOrders(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	assert.Equal(t, "Not authorized, token failed", domain.ErrorMessage(err))
	assert.Equal(t, 1, tokens.invalidated, "401 must drop the stored session")
}

func Test_Client_BackendMessagePropagates(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "No order items"})
	}, nil)

	_, err := client.CreateOrder(context.Background(), domain.OrderDraft{})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "No order items", domain.ErrorMessage(err))
}

func Test_Client_ProductPricesConvertToCents(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "p1", "name": "Widget", "price": 499.99},
			{"_id": "p2", "name": "Gadget", "price": 40},
		})
	}, nil)

	products, err := client.ListProducts(context.Background(), "", "")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(49999), products[0].PriceCents)
	assert.Equal(t, int64(4000), products[1].PriceCents)
}

func Test_Client_ListProductsPassesFilters(t *testing.T) {
	var gotQuery string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]any{})
	}, nil)

	_, err := client.ListProducts(context.Background(), "phone", "electronics")

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "keyword=phone")
	assert.Contains(t, gotQuery, "category=electronics")
}

func Test_Client_CreateOrderWirePayload(t *testing.T) {
	var payload map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]any{"_id": "order1"})
	}, &fakeTokens{token: "jwt"})

	now := time.Now().UTC()
	draft := domain.OrderDraft{
		Items: []domain.LineItem{
			{ID: "p1", Name: "Widget", Image: "/w.png", PriceCents: 2000, Quantity: 2},
		},
		ShippingAddress: domain.ShippingAddress{FullName: "Asha", City: "Pune"},
		PaymentMethod:   domain.PaymentMethodRazorpay,
		SubtotalCents:   4000,
		TaxCents:        720,
		ShippingCents:   4000,
		TotalCents:      8720,
		Paid:            true,
		PaidAt:          &now,
		Confirmation: &domain.PaymentConfirmation{
			GatewayOrderID: "order_rzp",
			PaymentID:      "pay_rzp",
			Signature:      "sig",
		},
	}

	order, err := client.CreateOrder(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "order1", order.ID)

	// Wire amounts are decimal major units.
	assert.Equal(t, 40.0, payload["itemsPrice"])
	assert.Equal(t, 7.2, payload["taxPrice"])
	assert.Equal(t, 40.0, payload["shippingPrice"])
	assert.Equal(t, 87.2, payload["totalPrice"])
	assert.Equal(t, true, payload["isPaid"])

	items := payload["orderItems"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, "p1", line["product"])
	assert.Equal(t, 20.0, line["price"])
	assert.Equal(t, 2.0, line["qty"])

	result := payload["paymentResult"].(map[string]any)
	assert.Equal(t, "order_rzp", result["orderId"])
	assert.Equal(t, "pay_rzp", result["paymentId"])
}

func Test_Client_CODOrderOmitsPaymentFields(t *testing.T) {
	var payload map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]any{"_id": "order2"})
	}, &fakeTokens{token: "jwt"})

	draft := domain.OrderDraft{
		Items:         []domain.LineItem{{ID: "p1", PriceCents: 100, Quantity: 1}},
		PaymentMethod: domain.PaymentMethodCOD,
		SubtotalCents: 100,
		TotalCents:    100,
	}

	_, err := client.CreateOrder(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, false, payload["isPaid"])
	assert.NotContains(t, payload, "paidAt")
	assert.NotContains(t, payload, "paymentResult")
}

func Test_Client_CreateGatewayOrder(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/razorpay/order", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 8720.0, body["amount"])
		json.NewEncoder(w).Encode(map[string]any{
			"key_id":   "rzp_test_key",
			"order_id": "order_rzp",
			"amount":   8720,
			"currency": "INR",
		})
	}, &fakeTokens{token: "jwt"})

	order, err := client.CreateGatewayOrder(context.Background(), "razorpay", 8720, "rcpt_1")

	require.NoError(t, err)
	assert.Equal(t, "rzp_test_key", order.KeyID)
	assert.Equal(t, "order_rzp", order.OrderID)
	assert.Equal(t, int64(8720), order.AmountCents)
	assert.Equal(t, "INR", order.Currency)
}

func Test_Client_BackendUnreachable(t *testing.T) {
	client := api.NewClient(api.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil, discardLogger())

	_, err := client.ListProducts(context.Background(), "", "")

	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func Test_Client_OrderAmountsConvertToCents(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"_id":           "order1",
			"itemsPrice":    40.0,
			"taxPrice":      7.2,
			"shippingPrice": 40.0,
			"totalPrice":    87.2,
			"isPaid":        true,
		})
	}, nil)

	order, err := client.GetOrder(context.Background(), "order1")

	require.NoError(t, err)
	assert.Equal(t, int64(4000), order.SubtotalCents)
	assert.Equal(t, int64(720), order.TaxCents)
	assert.Equal(t, int64(8720), order.TotalCents)
	assert.True(t, order.Paid)
}
