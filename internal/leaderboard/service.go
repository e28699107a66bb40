package leaderboard

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Service defines the leaderboard queries
type Service interface {
	// Top returns a page of the XP ranking. Tied users share a rank (1, 2, 2, 4)
	// and UserRank reports the same number.
	Top(ctx context.Context, limit, offset int) ([]domain.LeaderboardEntry, error)
	UserRank(ctx context.Context, userID string) (*domain.UserRank, error)
	Invalidate()
	CacheStats() CacheStats
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type service struct {
	repo   repository.Leaderboard
	pages  *expirable.LRU[string, []domain.LeaderboardEntry]
	group  singleflight.Group
	epoch  atomic.Uint64
	hits   atomic.Int64
	misses atomic.Int64
}

// NewService creates a leaderboard service whose pages are cached for ttl
func NewService(repo repository.Leaderboard, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		pages: expirable.NewLRU[string, []domain.LeaderboardEntry](DefaultCacheSize, nil, ttl),
	}
}

func clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Top serves pages from cache. Concurrent misses for the same page share one
// query, which runs detached from any single caller's cancellation. A page
// loaded across an invalidation is returned but not cached.
func (s *service) Top(ctx context.Context, limit, offset int) ([]domain.LeaderboardEntry, error) {
	limit, offset = clamp(limit, offset)
	key := fmt.Sprintf("%d:%d", limit, offset)

	if page, ok := s.pages.Get(key); ok {
		s.hits.Add(1)
		metrics.RecordCacheLookup(CacheNameLeaderboard, true)
		return clonePage(page), nil
	}
	s.misses.Add(1)
	metrics.RecordCacheLookup(CacheNameLeaderboard, false)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		epoch := s.epoch.Load()
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		entries, err := s.repo.TopByXP(loadCtx, limit, offset)
		if err != nil {
			return nil, err
		}
		if s.epoch.Load() == epoch {
			s.pages.Add(key, entries)
		}
		return entries, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return clonePage(v.([]domain.LeaderboardEntry)), nil
}

func (s *service) UserRank(ctx context.Context, userID string) (*domain.UserRank, error) {
	return s.repo.GetUserRank(ctx, userID)
}

// Invalidate drops every cached page
func (s *service) Invalidate() {
	s.epoch.Add(1)
	s.pages.Purge()
}

func (s *service) CacheStats() CacheStats {
	return CacheStats{Hits: s.hits.Load(), Misses: s.misses.Load(), Size: s.pages.Len()}
}

func clonePage(page []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(page))
	copy(out, page)
	return out
}
