// Package cache provides a response cache for route adapters. Cache is
// keyed by a fast in-memory hash (xxhash) of the request for
// process-lifetime lookups; FingerprintOf separately computes a
// content-addressed fingerprint (blake2b) suitable for a durable,
// cross-process cache key, which Cache itself does not use.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Key is a fast, non-cryptographic hash of a route request's bytes,
// suitable for an in-memory map lookup within a single process.
type Key uint64

// KeyOf hashes body with xxhash.
func KeyOf(body []byte) Key {
	return Key(xxhash.Sum64(body))
}

// Fingerprint is a content-addressed identifier for a route request,
// stable across processes and suitable as a key in a shared/durable
// cache (e.g. a file or external KV store keyed by request content).
type Fingerprint [blake2b.Size256]byte

// FingerprintOf computes a blake2b-256 fingerprint of body.
func FingerprintOf(body []byte) Fingerprint {
	return Fingerprint(blake2b.Sum256(body))
}

// Cache is a process-lifetime, in-memory cache of parsed route-adapter
// responses keyed by Key. It is safe for concurrent use even though the
// navigation core it feeds is single-threaded, because the host may
// fetch routes from multiple goroutines (e.g. pre-warming alternates)
// before handing one to a Controller.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[Key][]byte)}
}

// Get returns the cached response bytes for requestBody, if present.
func (c *Cache) Get(requestBody []byte) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[KeyOf(requestBody)]
	return v, ok
}

// Put stores responseBody under the key derived from requestBody.
func (c *Cache) Put(requestBody, responseBody []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[KeyOf(requestBody)] = append([]byte(nil), responseBody...)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
