// Package kv holds the per-session key-value state behind one small port.
// Values are opaque bytes; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Store is implemented by MemoryStore, RedisStore and PostgresStore.
// A ttl of zero means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key joins a namespace and a session id, e.g. Key("cartItems", sid).
func Key(namespace, sessionID string) string {
	return namespace + ":" + sessionID
}
