package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
)

// CacheConfig sizes the profile cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache settings
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedProfile wraps a profile with version metadata for cache invalidation
type cachedProfile struct {
	Version  string
	Profile  *Profile
	CachedAt time.Time
}

// profileCache is an in-memory LRU of assembled profiles with time-based expiry
type profileCache struct {
	lru    *expirable.LRU[string, *cachedProfile]
	hits   atomic.Int64
	misses atomic.Int64
}

func newProfileCache(cfg CacheConfig) *profileCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfile](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns the cached profile. Entries from an older schema version are dropped.
func (c *profileCache) Get(userID string) (*Profile, bool) {
	entry, found := c.lru.Get(userID)
	if found && entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		found = false
	}
	metrics.RecordCacheLookup(CacheNameProfile, found)
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.Profile, true
}

func (c *profileCache) Set(userID string, p *Profile) {
	c.lru.Add(userID, &cachedProfile{Version: CacheSchemaVersion, Profile: p, CachedAt: time.Now()})
}

func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

func (c *profileCache) Clear() {
	c.lru.Purge()
}

func (c *profileCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}
