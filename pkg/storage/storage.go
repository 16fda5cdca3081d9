// Package storage provides the local persistent key-value store backing the
// user registry, the current session record, and per-user favorites.
//
// The store is a deliberately small abstraction over "browser local storage"
// semantics: a flat namespace of string keys holding opaque serialized
// values. Implementations for different backends:
//   - file: one JSON file per key under the user data directory (default)
//   - memory: in-process map for tests
//   - redis: Redis-backed store for shared environments
//   - mongo: MongoDB-backed store
//
// Each logical key is owned by exactly one component (the credential store
// owns "users" and "currentUser", the favorites store owns "favorites_<id>").
// Other components must go through the owning component's operations rather
// than reading keys directly.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store closed")

// Store is the interface for local persistent key-value backends.
type Store interface {
	// Get retrieves the value for key.
	// Returns (nil, false, nil) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key currently present. Order is unspecified.
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// Well-known keys. The credential store owns the first two, the favorites
// store owns the per-user favorites keys built with FavoritesKey.
const (
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	favoritesKeyStem = "favorites_"
)

// FavoritesKey returns the storage key holding the favorites list for the
// given user id.
func FavoritesKey(userID string) string {
	return favoritesKeyStem + userID
}
