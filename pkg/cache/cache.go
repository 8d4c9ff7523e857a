// Package cache provides the TTL-bounded request cache for assembled stream
// lists.
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultTTL bounds staleness of cached stream lists.
const DefaultTTL = 6 * time.Hour

// maxEntries caps the number of live fingerprints. Eviction beyond TTL is
// size-based LRU, which only matters under very heavy multi-user traffic.
const maxEntries = 1024

// Store is a TTL key/value cache. The zero value is not usable; create one
// with New.
type Store[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a Store whose entries expire ttl after they are written.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		lru: expirable.NewLRU[string, V](maxEntries, nil, ttl),
	}
}

// Get returns the cached value for key, and whether a live entry was found.
func (s *Store[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

// Set stores value under key with the store's TTL.
func (s *Store[V]) Set(key string, value V) {
	s.lru.Add(key, value)
}

// Key builds the request fingerprint. id is the full colon-delimited media
// id (season and episode included), so episodes of one show get separate
// entries; the account identity keeps accounts from reading each other's
// cached results.
func Key(contentType, id, username string) string {
	return strings.Join([]string{contentType, id, username}, "|")
}
