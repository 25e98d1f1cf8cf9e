package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/storage"
	"github.com/shophub/storefront/internal/telemetry"
)

// StorageKey is the durable storage key holding the cart contents.
const StorageKey = "cartItems"

// Store holds the shopping cart, write-through to durable storage. Every
// mutation persists before updating memory, so the in-memory cart and the
// stored record never disagree. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	items   []domain.LineItem
	storage storage.Storage
	logger  *slog.Logger
	metrics *telemetry.StoreMetrics
}

// NewStore creates a cart store over the given storage backend. metrics may
// be nil.
func NewStore(store storage.Storage, logger *slog.Logger, metrics *telemetry.StoreMetrics) *Store {
	return &Store{
		storage: store,
		logger:  logger.With("component", "cart"),
		metrics: metrics,
	}
}

// Load restores the persisted cart. A missing, unreadable, or corrupt record
// yields an empty cart; it is never an error. Invalid lines are dropped.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !storage.IsNotFound(err) {
			s.logger.Warn("failed to read persisted cart, starting empty", "error", err)
		}
		s.items = nil
		return nil
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("corrupt cart record, starting empty", "error", err)
		s.items = nil
		return nil
	}

	valid := items[:0]
	for _, item := range items {
		if item.Valid() {
			valid = append(valid, item)
		} else {
			s.logger.Warn("dropping invalid cart line", "id", item.ID)
		}
	}

	s.items = valid
	s.logger.Info("cart restored", "lines", len(valid))
	return nil
}

// Add puts an item in the cart. If a line with the same id exists, the two
// merge into one: a positive incoming quantity replaces the stored one, a
// zero quantity increments it. A new item with zero quantity is added as 1.
func (s *Store) Add(ctx context.Context, item domain.LineItem) error {
	if item.ID == "" || item.PriceCents < 0 || item.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	merged := false
	for i := range next {
		if next[i].ID != item.ID {
			continue
		}
		if item.Quantity > 0 {
			next[i].Quantity = item.Quantity
		} else {
			next[i].Quantity++
		}
		merged = true
		break
	}
	if !merged {
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		next = append(next, item)
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.observe("add")
	return nil
}

// SetQuantity replaces a line's quantity. Quantities below 1 are rejected;
// use Remove to drop a line.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return domain.ErrCartItemNotFound
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.observe("set_quantity")
	return nil
}

// Remove drops a line from the cart. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.LineItem, 0, len(s.items))
	found := false
	for _, item := range s.items {
		if item.ID == id {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		return nil
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.observe("remove")
	return nil
}

// Clear empties the cart and removes the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.Clear", "failed to clear persisted cart")
	}
	s.items = nil
	s.observe("clear")
	return nil
}

// Items returns a snapshot copy of the cart lines.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// SubtotalCents returns the goods subtotal across all lines.
func (s *Store) SubtotalCents() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return subtotal(s.items)
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// snapshot copies the current lines. Callers hold s.mu.
func (s *Store) snapshot() []domain.LineItem {
	next := make([]domain.LineItem, len(s.items))
	copy(next, s.items)
	return next
}

// persist writes the candidate cart state to storage. Memory is only updated
// after this succeeds. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.persist", "failed to encode cart")
	}
	if err := s.storage.Put(ctx, StorageKey, data); err != nil {
		s.logger.Error("failed to persist cart", "error", err)
		return domain.WrapError(err, domain.EINTERNAL, "cart.persist", "failed to persist cart")
	}
	return nil
}

// observe records a mutation metric. Callers hold s.mu.
func (s *Store) observe(operation string) {
	s.metrics.ObserveCartUpdate(operation, subtotal(s.items))
}

func subtotal(items []domain.LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}
	return total
}
