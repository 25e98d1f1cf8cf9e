package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/shophub/storefront/internal/domain"
)

// TokenSource supplies the bearer token for authenticated requests and is
// told when the backend rejects it.
type TokenSource interface {
	// Token returns the current auth token, or "" when signed out.
	Token() string
	// Invalidate drops the stored token after a 401 response.
	Invalidate(ctx context.Context) error
}

// Config holds client settings.
type Config struct {
	// BaseURL is the backend API root, e.g. "http://localhost:5000/api".
	BaseURL string
	// Timeout bounds each request end to end.
	Timeout time.Duration
}

// Client talks to the storefront backend API. Amounts cross the wire as
// decimal major units; the client converts to and from integer cents at
// this boundary.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// NewClient creates an API client. tokens may be nil for unauthenticated use.
func NewClient(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger.With("component", "api"),
	}
}

// errorResponse is the backend's error payload shape.
type errorResponse struct {
	Message string `json:"message"`
}

// do issues a request, attaching the bearer token when available, and decodes
// the JSON response into out. Backend errors are surfaced as domain errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := fmt.Sprintf("api.%s %s", method, path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(err, domain.EINTERNAL, op, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, op, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.WrapError(err, domain.EUNAVAILABLE, op, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		message := c.errorMessage(resp)
		c.logger.Warn("backend request failed", "method", method, "path", path, "status", resp.StatusCode, "message", message)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if c.tokens != nil {
				if err := c.tokens.Invalidate(ctx); err != nil {
					c.logger.Warn("failed to invalidate session", "error", err)
				}
			}
			return domain.Unauthorized(op, message)
		case http.StatusNotFound:
			return &domain.Error{Code: domain.ENOTFOUND, Message: message, Op: op}
		case http.StatusBadRequest:
			return domain.Invalid(op, message)
		default:
			return &domain.Error{Code: domain.EINTERNAL, Message: message, Op: op}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, op, "failed to decode response")
	}
	return nil
}

// errorMessage extracts the backend's message field, falling back to the
// HTTP status text.
func (c *Client) errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		var payload errorResponse
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}

// wireProduct is a catalog entry as the backend sends it, with a decimal price.
type wireProduct struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	CountInStock int     `json:"countInStock"`
}

func (p wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Image:        p.Image,
		PriceCents:   toCents(p.Price),
		Rating:       p.Rating,
		CountInStock: p.CountInStock,
	}
}

// ListProducts fetches the catalog, optionally filtered by search keyword
// and category.
func (c *Client) ListProducts(ctx context.Context, keyword, category string) ([]domain.Product, error) {
	path := "/products"
	query := url.Values{}
	if keyword != "" {
		query.Set("keyword", keyword)
	}
	if category != "" {
		query.Set("category", category)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var wire []wireProduct
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(wire))
	for i, p := range wire {
		products[i] = p.toDomain()
	}
	return products, nil
}

// GetProduct fetches a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}
	product := wire.toDomain()
	return &product, nil
}

// wireOrderItem is an order line as the backend stores it.
type wireOrderItem struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
}

// wireOrder is an order record as the backend sends it.
type wireOrder struct {
	ID            string          `json:"_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	OrderItems    []wireOrderItem `json:"orderItems"`
	ItemsPrice    float64         `json:"itemsPrice"`
	TaxPrice      float64         `json:"taxPrice"`
	ShippingPrice float64         `json:"shippingPrice"`
	TotalPrice    float64         `json:"totalPrice"`
	IsPaid        bool            `json:"isPaid"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	IsDelivered   bool            `json:"isDelivered"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (o wireOrder) toDomain() domain.Order {
	items := make([]domain.LineItem, len(o.OrderItems))
	for i, line := range o.OrderItems {
		items[i] = domain.LineItem{
			ID:         line.Product,
			Name:       line.Name,
			Image:      line.Image,
			PriceCents: toCents(line.Price),
			Quantity:   line.Qty,
		}
	}
	return domain.Order{
		ID:            o.ID,
		Status:        o.Status,
		PaymentMethod: domain.PaymentMethod(o.PaymentMethod),
		SubtotalCents: toCents(o.ItemsPrice),
		TaxCents:      toCents(o.TaxPrice),
		ShippingCents: toCents(o.ShippingPrice),
		TotalCents:    toCents(o.TotalPrice),
		Paid:          o.IsPaid,
		PaidAt:        o.PaidAt,
		Delivered:     o.IsDelivered,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

// createOrderRequest is the order submission payload.
type createOrderRequest struct {
	OrderItems      []wireOrderItem             `json:"orderItems"`
	ShippingAddress domain.ShippingAddress      `json:"shippingAddress"`
	PaymentMethod   string                      `json:"paymentMethod"`
	ItemsPrice      float64                     `json:"itemsPrice"`
	TaxPrice        float64                     `json:"taxPrice"`
	ShippingPrice   float64                     `json:"shippingPrice"`
	TotalPrice      float64                     `json:"totalPrice"`
	IsPaid          bool                        `json:"isPaid"`
	PaidAt          *time.Time                  `json:"paidAt,omitempty"`
	PaymentResult   *domain.PaymentConfirmation `json:"paymentResult,omitempty"`
}

// CreateOrder submits a finalized draft to the backend and returns the
// stored order.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	items := make([]wireOrderItem, len(draft.Items))
	for i, line := range draft.Items {
		items[i] = wireOrderItem{
			Product: line.ID,
			Name:    line.Name,
			Image:   line.Image,
			Price:   fromCents(line.PriceCents),
			Qty:     line.Quantity,
		}
	}

	req := createOrderRequest{
		OrderItems:      items,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   string(draft.PaymentMethod),
		ItemsPrice:      fromCents(draft.SubtotalCents),
		TaxPrice:        fromCents(draft.TaxCents),
		ShippingPrice:   fromCents(draft.ShippingCents),
		TotalPrice:      fromCents(draft.TotalCents),
		IsPaid:          draft.Paid,
		PaidAt:          draft.PaidAt,
		PaymentResult:   draft.Confirmation,
	}

	var wire wireOrder
	if err := c.do(ctx, http.MethodPost, "/orders", req, &wire); err != nil {
		return nil, err
	}
	order := wire.toDomain()
	return &order, nil
}

// MyOrders fetches the signed-in user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders/myorders", nil, &wire); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(wire))
	for i, o := range wire {
		orders[i] = o.toDomain()
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var wire wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}
	order := wire.toDomain()
	return &order, nil
}

// GatewayOrder is a payment gateway order created server-side before the
// gateway's checkout window opens. Amount is in the gateway's minor unit.
type GatewayOrder struct {
	KeyID       string `json:"key_id"`
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// createGatewayOrderRequest asks the backend to open a gateway order.
type createGatewayOrderRequest struct {
	Amount  int64  `json:"amount"`
	Receipt string `json:"receipt"`
}

// CreateGatewayOrder asks the backend to create a payment order with the
// named gateway for the given total.
func (c *Client) CreateGatewayOrder(ctx context.Context, gateway string, amountCents int64, receipt string) (*GatewayOrder, error) {
	req := createGatewayOrderRequest{Amount: amountCents, Receipt: receipt}
	var order GatewayOrder
	if err := c.do(ctx, http.MethodPost, "/payment/"+url.PathEscape(gateway)+"/order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalOrders   int   `json:"totalOrders"`
	TotalUsers    int   `json:"totalUsers"`
	TotalProducts int   `json:"totalProducts"`
	RevenueCents  int64 `json:"-"`
}

// adminStatsWire carries revenue as a decimal amount.
type adminStatsWire struct {
	TotalOrders   int     `json:"totalOrders"`
	TotalUsers    int     `json:"totalUsers"`
	TotalProducts int     `json:"totalProducts"`
	Revenue       float64 `json:"revenue"`
}

// GetAdminStats fetches dashboard totals. Requires an admin session.
func (c *Client) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	var wire adminStatsWire
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &wire); err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalOrders:   wire.TotalOrders,
		TotalUsers:    wire.TotalUsers,
		TotalProducts: wire.TotalProducts,
		RevenueCents:  toCents(wire.Revenue),
	}, nil
}

// ListAllOrders fetches every order. Requires an admin session.
func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/admin/orders", nil, &wire); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, len(wire))
	for i, o := range wire {
		orders[i] = o.toDomain()
	}
	return orders, nil
}

// ListUsers fetches registered users. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// toCents converts a decimal major-unit amount to integer cents.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// fromCents converts integer cents to a decimal major-unit amount.
func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
