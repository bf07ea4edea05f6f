package extract

import (
	"sync"
	"time"

	"github.com/docsentry/docsentry/internal/model"
)

// cacheEntry represents one cached extraction result.
type cacheEntry struct {
	expiry time.Time
	doc    model.ExtractedDocument
}

// documentCache provides thread-safe caching of extraction results keyed by
// image hash, so re-verifying the same capture skips the model call.
type documentCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newDocumentCache creates a cache with the specified TTL.
func newDocumentCache(ttl time.Duration) *documentCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &documentCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

// get retrieves a document from the cache if present and unexpired.
func (c *documentCache) get(key string) (model.ExtractedDocument, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return model.ExtractedDocument{}, false
	}
	return entry.doc, true
}

// set stores a document in the cache.
func (c *documentCache) set(key string, doc model.ExtractedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		doc:    doc,
		expiry: time.Now().Add(c.ttl),
	}
}

func (c *documentCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *documentCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *documentCache) Close() {
	close(c.stopCh)
}
