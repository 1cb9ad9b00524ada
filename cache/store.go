package cache

import "time"

// Store is the in-process response cache contract. It holds arbitrary
// payloads keyed by an opaque string chosen by the caller, typically a URL
// plus query parameters. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the payload for key if present and not expired.
	Get(key string) (any, bool)
	// Set inserts or overwrites the entry for key with a fresh insertion
	// time. A ttl <= 0 means the entry never expires.
	Set(key string, value any, ttl time.Duration)
	// Delete removes a single entry. Removing an absent key is a no-op.
	Delete(key string)
	// Clear removes all entries.
	Clear()
	// Len reports the number of live entries, including entries that have
	// expired but have not been read since.
	Len() int
}

// GetAs returns the payload for key as T. It reports false when the key is
// absent, expired, or holds a value of a different type.
func GetAs[T any](s Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
