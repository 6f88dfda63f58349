package storage

import "errors"

// ErrNotFound is returned by Gateway.Get when the key is absent, and by
// playbook operations when the requested record does not exist.
var ErrNotFound = errors.New("key not found")

// Gateway is the contract against the key-value storage engine. Values are
// opaque serialized records; the engine provides no transactions and no
// compare-and-swap, so callers that need atomic read-merge-write must
// serialize their own writes (see PlaybookStore).
type Gateway interface {
	// Lifecycle
	Init() error
	Close() error

	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, overwriting any existing value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// List returns all keys starting with prefix, in no particular order.
	List(prefix string) ([]string, error)
}
