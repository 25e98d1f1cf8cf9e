package storefront

import (
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/currency"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/middleware"
)

// OrderHandler proxies the backend order endpoints, including the admin
// listings.
type OrderHandler struct {
	api       *api.Client
	formatter currency.Formatter
	logger    *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(client *api.Client, formatter currency.Formatter, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		api:       client,
		formatter: formatter,
		logger:    logger.With("handler", "orders"),
	}
}

// orderView is an order with display totals.
type orderView struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
	TotalCents    int64             `json:"totalCents"`
	Total         string            `json:"total"`
	Paid          bool              `json:"paid"`
	Delivered     bool              `json:"delivered"`
	CreatedAt     string            `json:"createdAt"`
	Items         []domain.LineItem `json:"items,omitempty"`
}

func (h *OrderHandler) view(o domain.Order) orderView {
	return orderView{
		ID:            o.ID,
		Status:        o.Status,
		PaymentMethod: string(o.PaymentMethod),
		TotalCents:    o.TotalCents,
		Total:         h.formatter.Format(o.TotalCents),
		Paid:          o.Paid,
		Delivered:     o.Delivered,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04"),
		Items:         o.Items,
	}
}

func (h *OrderHandler) views(orders []domain.Order) []orderView {
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = h.view(o)
	}
	return views
}

// Mine returns the signed-in user's order history.
func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	orders, err := h.api.MyOrders(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.views(orders))
}

// Get returns one order.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	order, err := h.api.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(*order))
}

// adminStatsView is the dashboard summary with display revenue.
type adminStatsView struct {
	TotalOrders   int    `json:"totalOrders"`
	TotalUsers    int    `json:"totalUsers"`
	TotalProducts int    `json:"totalProducts"`
	RevenueCents  int64  `json:"revenueCents"`
	Revenue       string `json:"revenue"`
}

// AdminStats returns the dashboard summary. The backend enforces admin auth.
func (h *OrderHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	stats, err := h.api.GetAdminStats(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, adminStatsView{
		TotalOrders:   stats.TotalOrders,
		TotalUsers:    stats.TotalUsers,
		TotalProducts: stats.TotalProducts,
		RevenueCents:  stats.RevenueCents,
		Revenue:       h.formatter.Format(stats.RevenueCents),
	})
}

// AdminOrders returns every order.
func (h *OrderHandler) AdminOrders(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	orders, err := h.api.ListAllOrders(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, h.views(orders))
}

// AdminUsers returns registered users.
func (h *OrderHandler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
