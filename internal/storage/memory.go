package storage

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage with an in-memory map. Used in tests and
// for ephemeral sessions where durability is not wanted.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string][]byte

	// PutErr, when set, is returned by every Put. Test hook for
	// simulating a failing backend.
	PutErr error
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string][]byte)}
}

// Get retrieves a record.
func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[key]
	if !ok {
		return nil, ErrKeyNotFound(key)
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a record.
func (s *MemoryStorage) Put(ctx context.Context, key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := make([]byte, len(value))
	copy(data, value)
	s.records[key] = data
	return nil
}

// Delete removes a record. No-op for missing keys.
func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
