package storage

import "context"

// Storage is the durable key/value port backing the cart, session, and
// transient checkout records. Implementations must make Put durable before
// returning: a reload immediately after a successful Put observes the new
// value.
type Storage interface {
	// Get retrieves the record stored under key.
	// Returns a not-found error (see IsNotFound) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous record.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the record under key.
	// Returns nil if the key doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error
}
