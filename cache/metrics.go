package cache

import "sync/atomic"

// Metrics receives cache lifecycle events. Implementations must be safe for
// concurrent use; methods are called on the hot path and should not block.
type Metrics interface {
	// Hit is called when a read returns a valid entry.
	Hit()
	// Miss is called when a read finds no usable entry.
	Miss()
	// Expired is called when a read removes an entry past its TTL.
	Expired()
	// Evicted is called when a bounded store removes an entry for space.
	Evicted()
}

// NoopMetrics discards all events. It is the default sink so the store never
// needs nil checks.
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Expired() {}
func (NoopMetrics) Evicted() {}

// Counters is an atomic Metrics implementation for tests and debug logging.
type Counters struct {
	hits    atomic.Int64
	misses  atomic.Int64
	expired atomic.Int64
	evicted atomic.Int64
}

func (c *Counters) Hit()     { c.hits.Add(1) }
func (c *Counters) Miss()    { c.misses.Add(1) }
func (c *Counters) Expired() { c.expired.Add(1) }
func (c *Counters) Evicted() { c.evicted.Add(1) }

func (c *Counters) Hits() int64        { return c.hits.Load() }
func (c *Counters) Misses() int64      { return c.misses.Load() }
func (c *Counters) Expirations() int64 { return c.expired.Load() }
func (c *Counters) Evictions() int64   { return c.evicted.Load() }
