package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/billing"
	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/pricing"
	"github.com/shophub/storefront/internal/storage"
	"github.com/shophub/storefront/internal/telemetry"
)

// State is a checkout flow phase. The flow only moves forward, except that
// a payment failure returns to payment selection and Retry re-opens an
// aborted flow.
type State int

const (
	StateIdle State = iota
	StateAddressEntry
	StatePaymentSelection
	StatePaymentInProgress
	StateOrderSubmitted
	StateSuccess
	StateAborted
)

// String returns the snake_case name used in logs and metrics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAddressEntry:
		return "address_entry"
	case StatePaymentSelection:
		return "payment_selection"
	case StatePaymentInProgress:
		return "payment_in_progress"
	case StateOrderSubmitted:
		return "order_submitted"
	case StateSuccess:
		return "success"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the flow has finished.
func (s State) Terminal() bool {
	return s == StateSuccess
}

// Transient storage keys holding in-progress checkout inputs so a restart
// mid-checkout resumes where the customer left off.
const (
	AddressKey       = "shippingAddress"
	PaymentMethodKey = "paymentMethod"
)

// OrderAPI submits finalized drafts to the backend.
type OrderAPI interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
}

// SessionSource exposes the signed-in user to the flow.
type SessionSource interface {
	Token() string
	Current() *domain.UserInfo
}

// Config is storefront branding passed to the payment gateway window.
type Config struct {
	StoreName  string
	Currency   string
	ThemeColor string
}

// Deps are the flow's collaborators. Provider and Gateway may be nil when
// only cash on delivery is offered.
type Deps struct {
	Cart      *cart.Store
	Pricing   *pricing.Calculator
	Orders    OrderAPI
	Provider  billing.Provider
	Gateway   billing.Gateway
	Session   SessionSource
	Transient storage.Storage
	Logger    *slog.Logger
	Metrics   *telemetry.StoreMetrics
	Config    Config
}

// Flow drives one checkout from cart review through address entry, payment,
// and order submission. One Flow serves one checkout attempt; construct a
// new one per checkout. All methods are safe for concurrent use.
type Flow struct {
	mu   sync.Mutex
	deps Deps

	validate *validator.Validate
	logger   *slog.Logger

	state       State
	address     domain.ShippingAddress
	addressSet  bool
	method      domain.PaymentMethod
	quote       *pricing.Quote
	orderID     string
	abortReason string
}

// NewFlow creates an idle checkout flow.
func NewFlow(deps Deps) *Flow {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Flow{
		deps:     deps,
		validate: validate,
		logger:   deps.Logger.With("component", "checkout"),
		state:    StateIdle,
	}
}

// Begin starts the checkout. An empty cart aborts immediately. The returned
// address is the form prefill: a previously saved in-progress address if one
// exists, otherwise the signed-in user's name and phone.
func (f *Flow) Begin(ctx context.Context) (*domain.ShippingAddress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return nil, domain.Invalid("checkout.Begin", "checkout already started")
	}

	if f.deps.Cart.IsEmpty() {
		f.abort("Your cart is empty")
		return nil, domain.ErrCartEmpty
	}

	f.deps.Metrics.CheckoutStarted()
	f.transition(StateAddressEntry)

	address := f.prefillAddress(ctx)
	f.address = *address
	return address, nil
}

// prefillAddress resumes a saved in-progress address, else seeds from the
// session. Callers hold f.mu.
func (f *Flow) prefillAddress(ctx context.Context) *domain.ShippingAddress {
	address := domain.ShippingAddress{Country: "India"}

	if data, err := f.deps.Transient.Get(ctx, AddressKey); err == nil {
		var saved domain.ShippingAddress
		if err := json.Unmarshal(data, &saved); err == nil {
			f.logger.Info("resuming saved shipping address")
			return &saved
		}
		f.logger.Warn("corrupt saved address, starting fresh")
	}

	if user := f.deps.Session.Current(); user != nil {
		address.FullName = user.Name
		address.Phone = user.Phone
	}
	return &address
}

// SubmitAddress validates and stores the shipping address, moving the flow
// to payment selection. Field failures return a ValidationError and leave
// the flow in address entry. An empty country defaults to India.
func (f *Flow) SubmitAddress(ctx context.Context, address domain.ShippingAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAddressEntry && f.state != StatePaymentSelection {
		return domain.Invalid("checkout.SubmitAddress", fmt.Sprintf("cannot submit address while %s", f.state))
	}

	if address.Country == "" {
		address.Country = "India"
	}

	if err := f.validate.Struct(address); err != nil {
		fields := make(map[string]string)
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fieldErr := range invalid {
				fields[fieldErr.Field()] = validationMessage(fieldErr)
			}
		} else {
			return domain.WrapError(err, domain.EINVALID, "checkout.SubmitAddress", "invalid shipping address")
		}
		return &domain.ValidationError{Fields: fields, Op: "checkout.SubmitAddress"}
	}

	if err := putJSON(ctx, f.deps.Transient, AddressKey, address); err != nil {
		f.logger.Warn("failed to save in-progress address", "error", err)
	}

	f.address = address
	f.addressSet = true
	f.transition(StatePaymentSelection)
	return nil
}

// Pay runs the payment step for the chosen method and submits the order.
// Gateway failures return the flow to payment selection with the cart and
// address intact; a rejected session aborts the flow.
func (f *Flow) Pay(ctx context.Context, method domain.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePaymentSelection {
		return domain.Invalid("checkout.Pay", fmt.Sprintf("cannot pay while %s", f.state))
	}
	if !method.Valid() {
		return domain.Invalid("checkout.Pay", fmt.Sprintf("unknown payment method: %s", method))
	}

	if f.deps.Session.Token() == "" {
		f.abort(domain.ErrAuthRequired.Message)
		return domain.ErrAuthRequired
	}

	items := f.deps.Cart.Items()
	if len(items) == 0 {
		f.abort("Your cart is empty")
		return domain.ErrCartEmpty
	}

	if err := putJSON(ctx, f.deps.Transient, PaymentMethodKey, method); err != nil {
		f.logger.Warn("failed to save payment method", "error", err)
	}
	f.method = method

	quote, err := f.deps.Pricing.QuoteItems(ctx, items)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "checkout.Pay", "failed to price order")
	}
	f.quote = quote

	f.transition(StatePaymentInProgress)
	f.deps.Metrics.PaymentAttempt(string(method))

	if method == domain.PaymentMethodCOD {
		return f.submitOrder(ctx, items, quote, nil)
	}

	// The interactive gateway step can take minutes. Release the lock so
	// status reads stay responsive while the customer pays.
	f.mu.Unlock()
	confirmation, err := f.collectGatewayPayment(ctx, quote)
	f.mu.Lock()

	if err != nil {
		f.deps.Metrics.PaymentFailed(string(method))
		if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			f.abort(domain.ErrorMessage(err))
			return err
		}
		f.logger.Warn("payment failed, returning to payment selection", "error", err)
		f.transition(StatePaymentSelection)
		return err
	}
	return f.submitOrder(ctx, items, quote, confirmation)
}

// collectGatewayPayment opens a gateway order and runs the interactive
// checkout window. Runs without f.mu held; it only touches immutable deps.
func (f *Flow) collectGatewayPayment(ctx context.Context, quote *pricing.Quote) (*domain.PaymentConfirmation, error) {
	const op = "checkout.collectGatewayPayment"

	if f.deps.Provider == nil || f.deps.Gateway == nil {
		return nil, billing.PaymentError("online payment is not configured", op, nil)
	}

	order, err := f.deps.Provider.CreateGatewayOrder(ctx, billing.CreateOrderParams{
		AmountCents: quote.TotalCents,
		Currency:    f.deps.Config.Currency,
		Receipt:     "rcpt_" + uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	opts := billing.CheckoutOptions{
		KeyID:       order.KeyID,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		OrderID:     order.ID,
		Name:        f.deps.Config.StoreName,
		Description: "Order payment",
		ThemeColor:  f.deps.Config.ThemeColor,
	}
	if user := f.deps.Session.Current(); user != nil {
		opts.Prefill = billing.Prefill{
			Name:    user.Name,
			Email:   user.Email,
			Contact: user.Phone,
		}
	}

	confirmation, err := f.deps.Gateway.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

// submitOrder sends the priced draft to the backend. Success clears the cart
// and the saved checkout inputs; failure aborts but leaves both intact so
// Retry can resume. Callers hold f.mu.
func (f *Flow) submitOrder(ctx context.Context, items []domain.LineItem, quote *pricing.Quote, confirmation *domain.PaymentConfirmation) error {
	f.transition(StateOrderSubmitted)

	draft := domain.OrderDraft{
		Items:           items,
		ShippingAddress: f.address,
		PaymentMethod:   f.method,
		SubtotalCents:   quote.SubtotalCents,
		TaxCents:        quote.TaxCents,
		ShippingCents:   quote.ShippingCents,
		TotalCents:      quote.TotalCents,
	}
	if confirmation != nil {
		now := time.Now().UTC()
		draft.Paid = true
		draft.PaidAt = &now
		draft.Confirmation = confirmation
	}

	order, err := f.deps.Orders.CreateOrder(ctx, draft)
	if err != nil {
		f.logger.Error("order submission failed", "error", err)
		f.abort(domain.ErrorMessage(err))
		return err
	}

	if err := f.deps.Cart.Clear(ctx); err != nil {
		f.logger.Warn("failed to clear cart after order", "error", err)
	}
	if err := f.deps.Transient.Delete(ctx, AddressKey); err != nil {
		f.logger.Warn("failed to clear saved address", "error", err)
	}
	if err := f.deps.Transient.Delete(ctx, PaymentMethodKey); err != nil {
		f.logger.Warn("failed to clear saved payment method", "error", err)
	}

	f.orderID = order.ID
	f.transition(StateSuccess)
	f.deps.Metrics.OrderCreated(string(f.method), quote.TotalCents)
	f.logger.Info("order placed", "order_id", order.ID, "method", f.method, "total_cents", quote.TotalCents)
	return nil
}

// Retry re-opens an aborted flow at payment selection, or at address entry
// when no address was collected yet.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAborted {
		return domain.Invalid("checkout.Retry", fmt.Sprintf("cannot retry while %s", f.state))
	}

	f.abortReason = ""
	if f.addressSet {
		f.transition(StatePaymentSelection)
	} else {
		f.transition(StateAddressEntry)
	}
	return nil
}

// State returns the current flow phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Address returns the collected shipping address.
func (f *Flow) Address() domain.ShippingAddress {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// Quote returns the latest pricing quote, or nil before the payment step.
func (f *Flow) Quote() *pricing.Quote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quote
}

// OrderID returns the backend order id after a successful checkout.
func (f *Flow) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// AbortReason returns the user-facing message for an aborted flow.
func (f *Flow) AbortReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.abortReason
}

// transition moves to the next state. Callers hold f.mu.
func (f *Flow) transition(next State) {
	f.logger.Info("checkout state change", "from", f.state.String(), "to", next.String())
	f.state = next
	f.deps.Metrics.CheckoutStep(next.String())
}

// abort ends the flow with a user-facing reason. Callers hold f.mu.
func (f *Flow) abort(reason string) {
	f.abortReason = reason
	f.transition(StateAborted)
}

// validationMessage renders one field failure for display.
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	default:
		return fmt.Sprintf("Invalid value (%s)", fieldErr.Tag())
	}
}

// putJSON marshals v and writes it under key.
func putJSON(ctx context.Context, store storage.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Put(ctx, key, data)
}
