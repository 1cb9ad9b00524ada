package cache

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt is a persistent KV backed by bbolt, used by the cache daemon so a
// warm cache survives restarts. Expiry is lazy: an expired entry is removed
// by the read that observes it.
type Bolt struct {
	db         *bolt.DB
	bucket     []byte
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.RWMutex
}

type BoltOptions struct {
	// Bucket is the name of the bolt bucket to use. Defaults to "responses".
	Bucket string
	// DefaultTTL is used when Put is called with ttl <= 0. If it is also
	// <= 0, such entries never expire.
	DefaultTTL time.Duration
	// Clock overrides the time source. Tests use this to drive expiry.
	Clock func() time.Time
}

// OpenBolt initializes or opens a Bolt store at the given path.
func OpenBolt(path string, opts BoltOptions) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	bucket := []byte("responses")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Bolt{db: db, bucket: bucket, defaultTTL: opts.DefaultTTL, now: now}, nil
}

// Close closes the underlying database.
func (s *Bolt) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores value with an absolute expiry computed as now+ttl.
// If ttl <= 0, DefaultTTL is used; if DefaultTTL <= 0, the item never expires.
func (s *Bolt) Put(key string, value []byte, ttl time.Duration) error {
	expiresAt := int64(0)
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixMilli()
	}
	// Layout: 8 bytes big endian expiresAt (unix millis) || raw value
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), buf)
	})
}

// Get returns the cached value if present and not expired. An entry found
// past its expiry is deleted before ErrExpired is returned.
func (s *Bolt) Get(key string) ([]byte, error) {
	s.mu.RLock()
	var out []byte
	var expired bool
	var exists bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		exists = true
		expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
		if expiresAt > 0 && s.now().UnixMilli() > expiresAt {
			expired = true
			return nil
		}
		out = append([]byte(nil), v[8:]...)
		return nil
	})
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	if expired {
		_ = s.deleteIfExpired(key)
		return nil, ErrExpired
	}
	return out, nil
}

// deleteIfExpired removes key only when the stored entry is still past its
// expiry. A Put may have refreshed the entry since the read that observed
// expiry; re-checking inside the write transaction keeps that entry intact.
func (s *Bolt) deleteIfExpired(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
		if expiresAt == 0 || s.now().UnixMilli() <= expiresAt {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Delete removes a key.
func (s *Bolt) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Clear removes every entry by dropping and recreating the bucket.
func (s *Bolt) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
}
