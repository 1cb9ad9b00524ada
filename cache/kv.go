package cache

import (
	"errors"
	"time"
)

// KV is the shared-cache contract used by the daemon tier: raw payloads with
// TTL semantics, addressable from several processes on one host.
// Implementations must be safe for concurrent use by multiple goroutines.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

var (
	ErrNotFound = errors.New("cache: not found")
	ErrExpired  = errors.New("cache: expired")
)
