package kv

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a key doesn't exist in the store
var ErrNotFound = errors.New("kv: key not found")

// OpTimeout bounds connection establishment and every individual store
// operation.
const OpTimeout = 5 * time.Second

// ConnError indicates the remote store could not be reached. Callers can
// distinguish it from operational failures with errors.As.
type ConnError struct {
	Backend string
	Addr    string
	Err     error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("kv: connect %s %s: %v", e.Backend, e.Addr, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// Store defines the interface for key-value storage backends. All
// implementations must be safe for concurrent use, connect lazily when an
// operation runs before Connect, and overwrite values wholesale on Set.
type Store interface {
	// Connect establishes the connection, returning *ConnError when the
	// backend is unreachable within OpTimeout
	Connect(ctx context.Context) error

	// Ping probes the backend, swallowing all errors into false
	Ping(ctx context.Context) bool

	// Get retrieves a value by key
	// Returns ErrNotFound if the key doesn't exist
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, overwriting any existing value for the key
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys
	// No error for keys that don't exist
	Delete(ctx context.Context, keys ...string) error

	// Close releases the connection
	Close() error
}
