// Package cache keeps serialized graph responses keyed by request. The directory never
// changes after startup, so a response stays valid until its TTL lapses or it is evicted.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bbernstein/weatherhub/internal/config"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
)

type responseEntry struct {
	body      []byte
	expiresAt time.Time
}

// ResponseCache is an LRU of response bodies with a per-entry expiry.
type ResponseCache struct {
	lru   *lru.Cache[string, responseEntry]
	ttl   time.Duration
	clock clockwork.Clock
	mu    sync.Mutex
}

func NewResponseCache(cfg *config.CacheConfig) (*ResponseCache, error) {
	return NewResponseCacheWithClock(cfg, clockwork.NewRealClock())
}

// NewResponseCacheWithClock lets tests drive expiry with a fake clock.
func NewResponseCacheWithClock(cfg *config.CacheConfig, clock clockwork.Clock) (*ResponseCache, error) {
	lruCache, err := lru.New[string, responseEntry](cfg.GraphQLLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &ResponseCache{
		lru:   lruCache,
		ttl:   cfg.GetGraphQLLRUTTL(),
		clock: clock,
	}, nil
}

// Key derives a cache key from the parts of a request that determine its response.
func Key(operationName, query string, variables map[string]any) (string, error) {
	vars, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("encoding variables: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(operationName))
	h.Write([]byte{0})
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write(vars)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *ResponseCache) Add(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	c.lru.Add(key, responseEntry{
		body:      stored,
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

func (c *ResponseCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.body, true
}

func (c *ResponseCache) Len() int {
	return c.lru.Len()
}

func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
