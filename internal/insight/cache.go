package insight

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	content   string
	expiresAt time.Time
}

// ResponseCache keeps completed chat responses in memory for a fixed TTL so repeated
// plan or explanation requests for an unchanged goal do not hit the model again.
// A nil *ResponseCache is valid and never stores anything.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewResponseCache returns nil when ttl <= 0, which disables caching.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	return &ResponseCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached response if present and not expired.
func (c *ResponseCache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.content, true
}

// Set stores a response and drops any entries that have expired.
func (c *ResponseCache) Set(key, content string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
		}
	}
	c.store[key] = cacheEntry{content: content, expiresAt: now.Add(c.ttl)}
}

func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// cacheKey hashes everything that changes the model's answer.
func cacheKey(model, prompt string, jsonMode bool, maxTokens int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%v:%d:%s", model, jsonMode, maxTokens, prompt)))
	return hex.EncodeToString(sum[:])
}
