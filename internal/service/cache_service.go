package service

import (
	"sync"
	"time"

	"github.com/pguia/registry/internal/config"
	"github.com/pguia/registry/internal/domain"
)

// CacheService memoizes build rows for the public short-link lookup path.
// Download URLs are never cached; they are freshly signed on every request.
// Permission resolution is never cached either; it is a per-request read
// path.
type CacheService interface {
	Get(key string) (*domain.Build, bool)
	Set(key string, build *domain.Build)
	Delete(key string)
	Clear()
}

type cacheEntry struct {
	build      *domain.Build
	expiration time.Time
}

type cacheService struct {
	cfg     *config.CacheConfig
	data    map[string]cacheEntry
	mu      sync.RWMutex
	enabled bool
	ttl     time.Duration
}

// NewCacheService creates an in-memory cache service
func NewCacheService(cfg *config.CacheConfig) CacheService {
	cs := &cacheService{
		cfg:     cfg,
		data:    make(map[string]cacheEntry),
		enabled: cfg.Enabled,
		ttl:     time.Duration(cfg.TTLSeconds) * time.Second,
	}

	// Start cleanup goroutine
	if cs.enabled {
		go cs.cleanup()
	}

	return cs
}

func (c *cacheService) Get(key string) (*domain.Build, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	// Check if expired
	if time.Now().After(entry.expiration) {
		return nil, false
	}

	return entry.build, true
}

func (c *cacheService) Set(key string, build *domain.Build) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check max size
	if len(c.data) >= c.cfg.MaxSize {
		// Simple eviction: remove expired entries
		c.evictExpired()

		// If still at max, drop everything (simplified)
		if len(c.data) >= c.cfg.MaxSize {
			c.data = make(map[string]cacheEntry)
		}
	}

	c.data[key] = cacheEntry{
		build:      build,
		expiration: time.Now().Add(c.ttl),
	}
}

func (c *cacheService) Delete(key string) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

func (c *cacheService) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]cacheEntry)
}

func (c *cacheService) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		c.evictExpired()
		c.mu.Unlock()
	}
}

func (c *cacheService) evictExpired() {
	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.expiration) {
			delete(c.data, key)
		}
	}
}

// ShortLinkCacheKey generates the cache key for a short-link lookup
func ShortLinkCacheKey(shortID string) string {
	return "shortlink:" + shortID
}
