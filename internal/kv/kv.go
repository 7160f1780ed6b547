// Package kv defines the persisted key-value contract the ledger sits on.
//
// Each entry holds an opaque string under a fixed key; the ledger stores
// whole JSON arrays per key, so a single Set replaces the entire collection.
// There are no multi-key transactions.
package kv

import "context"

// Store is the single I/O boundary of the ledger engine.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// callers treat an absent key as an empty collection.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
