package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shophub/storefront/internal/domain"
	"github.com/shophub/storefront/internal/storage"
)

// StorageKey is the durable storage key holding the signed-in user record.
const StorageKey = "userInfo"

// Store holds the current user session, backed by durable storage so a
// sign-in survives restarts. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage storage.Storage
	current *domain.UserInfo
	logger  *slog.Logger
}

// NewStore creates a session store over the given storage backend.
func NewStore(store storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		storage: store,
		logger:  logger.With("component", "session"),
	}
}

// Load restores the persisted session. A missing or unreadable record means
// logged out; it is never an error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !storage.IsNotFound(err) {
			s.logger.Warn("failed to read persisted session, starting logged out", "error", err)
		}
		s.current = nil
		return nil
	}

	var info domain.UserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		s.logger.Warn("corrupt session record, starting logged out", "error", err)
		s.current = nil
		return nil
	}

	s.current = &info
	s.logger.Info("session restored", "email", info.Email, "is_admin", info.IsAdmin)
	return nil
}

// Save stores the signed-in user and persists it.
func (s *Store) Save(ctx context.Context, info domain.UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(info)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "session.Save", "failed to encode session")
	}
	if err := s.storage.Put(ctx, StorageKey, data); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "session.Save", "failed to persist session")
	}

	s.current = &info
	return nil
}

// Clear signs the user out and removes the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "session.Clear", "failed to remove persisted session")
	}
	s.current = nil
	return nil
}

// Current returns a copy of the signed-in user, or nil when logged out.
func (s *Store) Current() *domain.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	info := *s.current
	return &info
}

// Token returns the current auth token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Invalidate drops the session after the backend rejects its token.
func (s *Store) Invalidate(ctx context.Context) error {
	s.logger.Info("session invalidated by backend")
	return s.Clear(ctx)
}
