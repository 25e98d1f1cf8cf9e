package storefront

import (
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/billing"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/middleware"
)

// GatewayHandler exposes the hosted payment bridge: the client fetches the
// pending checkout options, runs the gateway UI, then posts the outcome.
type GatewayHandler struct {
	gateway *billing.HostedGateway
	logger  *slog.Logger
}

// NewGatewayHandler creates a gateway handler.
func NewGatewayHandler(gateway *billing.HostedGateway, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		logger:  logger.With("handler", "gateway"),
	}
}

// pendingView is the payment awaiting client confirmation.
type pendingView struct {
	KeyID          string `json:"keyId"`
	AmountCents    int64  `json:"amountCents"`
	Currency       string `json:"currency"`
	OrderID        string `json:"orderId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PrefillName    string `json:"prefillName,omitempty"`
	PrefillEmail   string `json:"prefillEmail,omitempty"`
	PrefillContact string `json:"prefillContact,omitempty"`
	ThemeColor     string `json:"themeColor,omitempty"`
}

// Pending returns the payment waiting on the client, or 404 when idle.
func (h *GatewayHandler) Pending(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	opts := h.gateway.Pending()
	if opts == nil {
		writeError(w, logger, &domain.Error{
			Code:    domain.ENOTFOUND,
			Message: "No payment in progress",
			Op:      "gateway.Pending",
		})
		return
	}

	writeJSON(w, http.StatusOK, pendingView{
		KeyID:          opts.KeyID,
		AmountCents:    opts.AmountCents,
		Currency:       opts.Currency,
		OrderID:        opts.OrderID,
		Name:           opts.Name,
		Description:    opts.Description,
		PrefillName:    opts.Prefill.Name,
		PrefillEmail:   opts.Prefill.Email,
		PrefillContact: opts.Prefill.Contact,
		ThemeColor:     opts.ThemeColor,
	})
}

// Confirm completes the pending payment with the gateway receipt.
func (h *GatewayHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var confirmation domain.PaymentConfirmation
	if err := decodeBody(r, &confirmation); err != nil {
		writeError(w, logger, err)
		return
	}

	if err := h.gateway.Confirm(confirmation); err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "confirmed"})
}

// cancelRequest carries the optional cancellation reason.
type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel fails the pending payment.
func (h *GatewayHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	// The body is optional; an empty cancel uses the default reason.
	var req cancelRequest
	_ = decodeBody(r, &req)

	if err := h.gateway.Cancel(req.Reason); err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancelled"})
}
