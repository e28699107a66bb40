package leaderboard

import "time"

// Page limits
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Cache defaults
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 30 * time.Second
	// LoadTimeout bounds a shared page query once it no longer follows its callers
	LoadTimeout = 10 * time.Second
)

// CacheNameLeaderboard labels leaderboard cache lookups in metrics
const CacheNameLeaderboard = "leaderboard"

// Log messages
const (
	LogMsgCacheInvalidated = "Leaderboard cache invalidated"
)
