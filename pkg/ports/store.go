package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by ClientStore.Read when the key was never written or has been cleared.
var ErrKeyNotFound = errors.New("key not found")

// ClientStore is the client-side persistence port.
// Callers own the failure policy: the engine logs and swallows every error it returns.
type ClientStore interface {
	// Read returns the value stored under key, or ErrKeyNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error

	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}
