// Package cache provides a process-local, TTL-keyed memoization layer for
// external-service responses (geocoding, routing). It never caches
// failures: a transient upstream error must not constrain retries on the
// next request.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a bounded, key-value cache with per-entry expiration. The
// zero value is not usable; construct with New.
type TTLCache struct {
	mu    sync.Mutex
	lru   *lru.Cache
	clock shared.Clock
}

// New builds a TTLCache holding at most maxEntries keys, evicting least
// recently used entries once full.
func New(maxEntries int, clock shared.Clock) (*TTLCache, error) {
	backing, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &TTLCache{lru: backing, clock: clock}, nil
}

// Key normalizes input into the cache's key space: the hex SHA-256 digest
// of the given string. Callers are responsible for normalizing the input
// (e.g. lower-casing an address) before calling Key.
func Key(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key if present and not expired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	e := raw.(entry)
	if c.clock.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL. A non-positive ttl is
// treated as "do not cache" and is a no-op, since the cache has no
// negative-result semantics and callers should never pass a TTL for a
// failed upstream call.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{value: value, expiresAt: c.clock.Now().Add(ttl)})
}
