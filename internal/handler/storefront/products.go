package storefront

import (
	"log/slog"
	"net/http"

	"github.com/shophub/storefront/internal/api"
	"github.com/shophub/storefront/internal/currency"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/middleware"
)

// ProductHandler proxies the backend catalog, decorating prices for display.
type ProductHandler struct {
	api       *api.Client
	formatter currency.Formatter
	logger    *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(client *api.Client, formatter currency.Formatter, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		api:       client,
		formatter: formatter,
		logger:    logger.With("handler", "products"),
	}
}

// productView is a catalog entry with a display price.
type productView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	PriceCents   int64   `json:"priceCents"`
	Price        string  `json:"price"`
	Rating       float64 `json:"rating"`
	CountInStock int     `json:"countInStock"`
}

func (h *ProductHandler) view(p domain.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Image:        p.Image,
		PriceCents:   p.PriceCents,
		Price:        h.formatter.Format(p.PriceCents),
		Rating:       p.Rating,
		CountInStock: p.CountInStock,
	}
}

// List returns the catalog, honoring keyword and category filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	keyword := r.URL.Query().Get("keyword")
	category := r.URL.Query().Get("category")

	products, err := h.api.ListProducts(r.Context(), keyword, category)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = h.view(p)
	}
	writeJSON(w, http.StatusOK, views)
}

// Get returns one catalog entry.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	product, err := h.api.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(*product))
}
