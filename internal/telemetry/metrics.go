package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics tracks storefront business metrics: cart activity, checkout
// funnel progression, and payment outcomes. A nil *StoreMetrics is a valid
// no-op receiver so packages can run unmetered in tests.
type StoreMetrics struct {
	cartUpdates     *prometheus.CounterVec
	cartValue       prometheus.Histogram
	checkoutStarted prometheus.Counter
	checkoutSteps   *prometheus.CounterVec
	paymentAttempts *prometheus.CounterVec
	paymentFailures *prometheus.CounterVec
	ordersCreated   *prometheus.CounterVec
	orderValue      prometheus.Histogram
}

// NewStoreMetrics registers storefront metrics on the given registry.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	factory := promauto.With(reg)

	return &StoreMetrics{
		cartUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_updates_total",
				Help: "Total number of cart mutations by operation",
			},
			[]string{"operation"},
		),
		cartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storefront_cart_value_cents",
				Help:    "Cart subtotal in cents after each mutation",
				Buckets: prometheus.ExponentialBuckets(100, 4, 10),
			},
		),
		checkoutStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_checkout_started_total",
				Help: "Total number of checkout flows begun",
			},
		),
		checkoutSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_checkout_steps_total",
				Help: "Checkout funnel step transitions",
			},
			[]string{"step"},
		),
		paymentAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_payment_attempts_total",
				Help: "Total payment attempts by method",
			},
			[]string{"method"},
		),
		paymentFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_payment_failures_total",
				Help: "Total failed payment attempts by method",
			},
			[]string{"method"},
		),
		ordersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_orders_created_total",
				Help: "Total orders accepted by the backend, by payment method",
			},
			[]string{"method"},
		),
		orderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storefront_order_value_cents",
				Help:    "Order grand total in cents",
				Buckets: prometheus.ExponentialBuckets(100, 4, 10),
			},
		),
	}
}

// ObserveCartUpdate records a cart mutation and the resulting subtotal.
func (m *StoreMetrics) ObserveCartUpdate(operation string, subtotalCents int64) {
	if m == nil {
		return
	}
	m.cartUpdates.WithLabelValues(operation).Inc()
	m.cartValue.Observe(float64(subtotalCents))
}

// CheckoutStarted records a new checkout flow.
func (m *StoreMetrics) CheckoutStarted() {
	if m == nil {
		return
	}
	m.checkoutStarted.Inc()
}

// CheckoutStep records a funnel step transition.
func (m *StoreMetrics) CheckoutStep(step string) {
	if m == nil {
		return
	}
	m.checkoutSteps.WithLabelValues(step).Inc()
}

// PaymentAttempt records a payment being initiated.
func (m *StoreMetrics) PaymentAttempt(method string) {
	if m == nil {
		return
	}
	m.paymentAttempts.WithLabelValues(method).Inc()
}

// PaymentFailed records a payment that did not complete.
func (m *StoreMetrics) PaymentFailed(method string) {
	if m == nil {
		return
	}
	m.paymentFailures.WithLabelValues(method).Inc()
}

// OrderCreated records an order accepted by the backend.
func (m *StoreMetrics) OrderCreated(method string, totalCents int64) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(method).Inc()
	m.orderValue.Observe(float64(totalCents))
}
