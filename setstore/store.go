package setstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a set does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store persists serialized sets by name.
type Store interface {
	// Get returns the serialized set stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put stores data under name, replacing any previous value atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
