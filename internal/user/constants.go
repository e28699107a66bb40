package user

import "time"

// CacheSchemaVersion is bumped when the cached profile shape changes so old entries are dropped
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// CacheNameProfile labels profile cache lookups in metrics
const CacheNameProfile = "profile"

// Profile field limits
const (
	MaxBioLength            = 500
	MaxAvatarURLLength      = 2048
	MaxGithubUsernameLength = 39
)

// Log messages
const (
	LogMsgProfileUpdated     = "Profile updated"
	LogMsgProfileInvalidated = "Profile cache invalidated"
)
