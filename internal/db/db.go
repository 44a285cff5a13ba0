package db

import (
	"context"
	"time"
)

// Store is the database facade used by main; repositories depend on the
// narrow sub-interfaces.
//
//nolint:interfacebloat // facade, consumers declare their own subsets
type Store interface {
	Pinger
	KVStore
	HashStore
	SnapshotStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore reads and removes plain keys.
type KVStore interface {
	// Get returns ErrKeyNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, keys ...string) error
}

// HashStore reads hashes.
type HashStore interface {
	// HGetAll returns an empty map for a missing key.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// SnapshotStore writes a value and its metadata hash in one transaction,
// so readers never see a value with another value's metadata. key and
// metaKey must hash to the same cluster slot.
type SnapshotStore interface {
	SetWithMeta(ctx context.Context, key string, value []byte, metaKey string, meta map[string]string) error
}
