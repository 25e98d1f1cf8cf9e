package storefront

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/shophub/storefront/internal/checkout"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/middleware"
)

// CheckoutHandler exposes the checkout flow over HTTP. One flow runs at a
// time; starting a new checkout replaces a finished or aborted one.
type CheckoutHandler struct {
	mu      sync.Mutex
	flow    *checkout.Flow
	newFlow func() *checkout.Flow
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout handler. newFlow constructs a fresh
// flow per checkout attempt.
func NewCheckoutHandler(newFlow func() *checkout.Flow, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		newFlow: newFlow,
		logger:  logger.With("handler", "checkout"),
	}
}

// statusView is the flow status payload.
type statusView struct {
	State       string                  `json:"state"`
	Address     *domain.ShippingAddress `json:"address,omitempty"`
	OrderID     string                  `json:"orderId,omitempty"`
	AbortReason string                  `json:"abortReason,omitempty"`
}

func flowStatus(flow *checkout.Flow) statusView {
	view := statusView{
		State:       flow.State().String(),
		OrderID:     flow.OrderID(),
		AbortReason: flow.AbortReason(),
	}
	if address := flow.Address(); address != (domain.ShippingAddress{}) {
		view.Address = &address
	}
	return view
}

// current returns the active flow, or nil before the first Begin.
func (h *CheckoutHandler) current() *checkout.Flow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flow
}

// Begin starts a new checkout attempt.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	h.mu.Lock()
	flow := h.newFlow()
	h.flow = flow
	h.mu.Unlock()

	address, err := flow.Begin(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, statusView{
		State:   flow.State().String(),
		Address: address,
	})
}

// Address submits the shipping address.
func (h *CheckoutHandler) Address(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	flow := h.current()
	if flow == nil {
		writeError(w, logger, domain.Invalid("checkout.Address", "checkout not started"))
		return
	}

	var address domain.ShippingAddress
	if err := decodeBody(r, &address); err != nil {
		writeError(w, logger, err)
		return
	}

	if err := flow.SubmitAddress(r.Context(), address); err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, flowStatus(flow))
}

// payRequest selects the payment method.
type payRequest struct {
	Method string `json:"method"`
}

// Pay runs the payment step and submits the order.
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	flow := h.current()
	if flow == nil {
		writeError(w, logger, domain.Invalid("checkout.Pay", "checkout not started"))
		return
	}

	var req payRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	if err := flow.Pay(r.Context(), domain.PaymentMethod(req.Method)); err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, flowStatus(flow))
}

// Status reports the flow state.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	flow := h.current()
	if flow == nil {
		writeJSON(w, http.StatusOK, statusView{State: checkout.StateIdle.String()})
		return
	}
	writeJSON(w, http.StatusOK, flowStatus(flow))
}

// Retry re-opens an aborted flow.
func (h *CheckoutHandler) Retry(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	flow := h.current()
	if flow == nil {
		writeError(w, logger, domain.Invalid("checkout.Retry", "checkout not started"))
		return
	}

	if err := flow.Retry(); err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, flowStatus(flow))
}
