package router

import (
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/handler/storefront"
	"github.com/shophub/storefront/internal/middleware"
)

// Handlers are the storefront HTTP handlers to mount.
type Handlers struct {
	Cart     *storefront.CartHandler
	Checkout *storefront.CheckoutHandler
	Gateway  *storefront.GatewayHandler
	Products *storefront.ProductHandler
	Orders   *storefront.OrderHandler
}

// New builds the storefront router with the shared middleware chain.
func New(h Handlers, metrics *middleware.Metrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /products", h.Products.List)
	mux.HandleFunc("GET /products/{id}", h.Products.Get)

	mux.HandleFunc("GET /cart", h.Cart.View)
	mux.HandleFunc("POST /cart/items", h.Cart.Add)
	mux.HandleFunc("PUT /cart/items/{id}", h.Cart.Update)
	mux.HandleFunc("DELETE /cart/items/{id}", h.Cart.Remove)
	mux.HandleFunc("DELETE /cart", h.Cart.Clear)

	mux.HandleFunc("POST /checkout", h.Checkout.Begin)
	mux.HandleFunc("GET /checkout", h.Checkout.Status)
	mux.HandleFunc("POST /checkout/address", h.Checkout.Address)
	mux.HandleFunc("POST /checkout/pay", h.Checkout.Pay)
	mux.HandleFunc("POST /checkout/retry", h.Checkout.Retry)

	mux.HandleFunc("GET /checkout/gateway", h.Gateway.Pending)
	mux.HandleFunc("POST /checkout/gateway/confirm", h.Gateway.Confirm)
	mux.HandleFunc("POST /checkout/gateway/cancel", h.Gateway.Cancel)

	mux.HandleFunc("GET /orders/mine", h.Orders.Mine)
	mux.HandleFunc("GET /orders/{id}", h.Orders.Get)

	mux.HandleFunc("GET /admin/stats", h.Orders.AdminStats)
	mux.HandleFunc("GET /admin/orders", h.Orders.AdminOrders)
	mux.HandleFunc("GET /admin/users", h.Orders.AdminUsers)

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.WithRequestLogger(logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
