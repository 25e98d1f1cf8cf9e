package storefront

import (
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/currency"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/middleware"
	"github.com/shophub/storefront/internal/pricing"
)

// CartHandler serves the cart view and mutation endpoints.
type CartHandler struct {
	store     *cart.Store
	pricing   *pricing.Calculator
	formatter currency.Formatter
	logger    *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(store *cart.Store, calc *pricing.Calculator, formatter currency.Formatter, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:     store,
		pricing:   calc,
		formatter: formatter,
		logger:    logger.With("handler", "cart"),
	}
}

// cartLine is one cart row in the view payload.
type cartLine struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	PriceCents    int64  `json:"priceCents"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotalCents"`
	Price         string `json:"price"`
	Subtotal      string `json:"subtotal"`
}

// cartView is the full cart payload with the priced summary.
type cartView struct {
	Items         []cartLine `json:"items"`
	SubtotalCents int64      `json:"subtotalCents"`
	ShippingCents int64      `json:"shippingCents"`
	TaxCents      int64      `json:"taxCents"`
	TotalCents    int64      `json:"totalCents"`
	Subtotal      string     `json:"subtotal"`
	Shipping      string     `json:"shipping"`
	Tax           string     `json:"tax"`
	Total         string     `json:"total"`
}

// View returns the cart with a live pricing quote.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	items := h.store.Items()
	quote, err := h.pricing.QuoteItems(r.Context(), items)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	view := cartView{
		Items:         make([]cartLine, len(items)),
		SubtotalCents: quote.SubtotalCents,
		ShippingCents: quote.ShippingCents,
		TaxCents:      quote.TaxCents,
		TotalCents:    quote.TotalCents,
		Subtotal:      h.formatter.Format(quote.SubtotalCents),
		Shipping:      h.formatter.Format(quote.ShippingCents),
		Tax:           h.formatter.Format(quote.TaxCents),
		Total:         h.formatter.Format(quote.TotalCents),
	}
	for i, item := range items {
		view.Items[i] = cartLine{
			ID:            item.ID,
			Name:          item.Name,
			Image:         item.Image,
			PriceCents:    item.PriceCents,
			Quantity:      item.Quantity,
			SubtotalCents: item.SubtotalCents(),
			Price:         h.formatter.Format(item.PriceCents),
			Subtotal:      h.formatter.Format(item.SubtotalCents()),
		}
	}

	writeJSON(w, http.StatusOK, view)
}

// addRequest is the add-to-cart payload.
type addRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
}

// Add puts an item in the cart, merging with an existing line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req addRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	item := domain.LineItem{
		ID:         req.ID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Image:      req.Image,
		Quantity:   req.Quantity,
	}
	if err := h.store.Add(r.Context(), item); err != nil {
		writeError(w, logger, err)
		return
	}

	h.View(w, r)
}

// updateRequest is the set-quantity payload.
type updateRequest struct {
	Quantity int `json:"quantity"`
}

// Update replaces a line's quantity.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var req updateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	id := r.PathValue("id")
	if err := h.store.SetQuantity(r.Context(), id, req.Quantity); err != nil {
		writeError(w, logger, err)
		return
	}

	h.View(w, r)
}

// Remove drops a line from the cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	id := r.PathValue("id")
	if err := h.store.Remove(r.Context(), id); err != nil {
		writeError(w, logger, err)
		return
	}

	h.View(w, r)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	if err := h.store.Clear(r.Context()); err != nil {
		writeError(w, logger, err)
		return
	}

	h.View(w, r)
}
