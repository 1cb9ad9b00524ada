package cache

import (
	"sync"
	"time"
)

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

// expired reports whether the entry is past its TTL at the given instant.
// An entry is valid while now-insertedAt <= ttl; a ttl <= 0 never expires.
func (e *entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.insertedAt) > e.ttl
}

// Memory is an in-memory Store with lazy expiry: an expired entry stays in
// the map until the first read that observes it, which removes it. There is
// no background sweep. With WithCapacity the store is bounded and evicts the
// least recently used key when a new key would exceed the bound.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]*entry
	lru      *lruList
	capacity int
	metrics  Metrics
	now      func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithCapacity bounds the store to n entries, evicting the least recently
// used key on insert when full. n <= 0 leaves the store unbounded.
func WithCapacity(n int) MemoryOption {
	return func(m *Memory) { m.capacity = n }
}

// WithMetrics plugs a Metrics sink. The default discards all events.
func WithMetrics(mx Metrics) MemoryOption {
	return func(m *Memory) {
		if mx != nil {
			m.metrics = mx
		}
	}
}

// WithClock overrides the time source. Tests use this to drive expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory builds an empty in-memory store. Construct one per process and
// hand it to consumers by reference; there is no package-level singleton.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		metrics: NoopMetrics{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.capacity > 0 {
		m.lru = newLRUList()
	}
	return m
}

// Get returns the payload for key. An expired entry is removed and reported
// as a miss. A valid hit has no side effect on the entry itself: the TTL is
// not refreshed.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.metrics.Miss()
		return nil, false
	}
	if e.expired(m.now()) {
		m.removeLocked(key)
		m.metrics.Expired()
		m.metrics.Miss()
		return nil, false
	}
	if m.lru != nil {
		m.lru.touch(key)
	}
	m.metrics.Hit()
	return e.value, true
}

// Set inserts or overwrites the entry for key, stamping it with the current
// time. When the store is bounded and full, inserting a new key evicts the
// least recently used one first.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.capacity > 0 && len(m.entries) >= m.capacity {
		if victim, ok := m.lru.evict(); ok {
			delete(m.entries, victim)
			m.metrics.Evicted()
		}
	}
	m.entries[key] = &entry{value: value, insertedAt: m.now(), ttl: ttl}
	if m.lru != nil {
		m.lru.touch(key)
	}
}

// Delete removes a single entry. Absent keys are a no-op.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(key)
}

// Clear empties the store.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
	if m.lru != nil {
		m.lru.reset()
	}
}

// Len reports the number of entries currently held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeLocked(key string) {
	delete(m.entries, key)
	if m.lru != nil {
		m.lru.remove(key)
	}
}
