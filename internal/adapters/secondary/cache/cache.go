package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ReplyCache memoizes computed replies for a short window so repeated
// identical messages skip the provider call. Entries expire after the TTL
// and are evicted lazily on read; the size bound keeps a long-running
// process from growing without limit.
type ReplyCache struct {
	lru *expirable.LRU[string, string]
}

// New creates a reply cache with the given capacity and entry TTL
func New(size int, ttl time.Duration) *ReplyCache {
	return &ReplyCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Get returns the cached reply for key, or false on miss or expiry
func (c *ReplyCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, overwriting unconditionally. It never fails:
// a dropped write only costs one extra provider call later.
func (c *ReplyCache) Set(key, value string) {
	c.lru.Add(key, value)
}
