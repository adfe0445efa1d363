// Package cache provides an in-memory key/value store with per-entry
// expiry, plus helpers for memoizing remote calls.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Keys longer than this are replaced with a fixed-width content hash.
const maxKeyLen = 250

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache stores values with a time-to-live. Expired entries are treated
// as absent and removed lazily on access; there is no background sweep
// and no capacity bound.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a cache whose entries expire after defaultTTL.
func New(defaultTTL time.Duration) *Cache {
	return NewWithClock(defaultTTL, time.Now)
}

// NewWithClock creates a cache with an injectable clock.
func NewWithClock(defaultTTL time.Duration, now func() time.Time) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Get returns the value stored under key. A value whose expiry has
// passed is deleted and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL, overwriting any
// existing entry and resetting its expiry.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL. A ttl <= 0 falls
// back to the default.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Key derives a cache key from a prefix, an operation name and the
// string form of each argument, joined with colons. Keys exceeding
// maxKeyLen are replaced by "prefix:op:<md5 hex>" so every key stays
// bounded in size.
func Key(prefix, op string, args ...string) string {
	parts := append([]string{prefix, op}, args...)
	key := strings.Join(parts, ":")
	if len(key) > maxKeyLen {
		sum := md5.Sum([]byte(key))
		key = prefix + ":" + op + ":" + hex.EncodeToString(sum[:])
	}
	return key
}

// Do memoizes fn under key. A hit returns the stored value without
// calling fn; a miss calls fn exactly once and stores any successful
// result, empty results included. Failed calls are never cached.
func Do[T any](c *Cache, key string, fn func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	result, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, result)
	return result, nil
}
