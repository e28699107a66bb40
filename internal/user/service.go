package user

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Profile is a user together with their progression
type Profile struct {
	User   *domain.User               `json:"user"`
	Level  domain.LevelInfo           `json:"level"`
	Streak domain.StreakInfo          `json:"streak"`
	Badges []gamification.EarnedBadge `json:"badges"`
}

// Service defines profile operations
type Service interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	InvalidateProfile(userID string)
	GetCacheStats() CacheStats
}

type service struct {
	repo        repository.User
	progression gamification.Service
	clock       clock.Clock
	cache       *profileCache
}

// NewService creates a new user service
func NewService(repo repository.User, progression gamification.Service, clk clock.Clock, cfg CacheConfig) Service {
	return &service{
		repo:        repo,
		progression: progression,
		clock:       clk,
		cache:       newProfileCache(cfg),
	}
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// GetProfile assembles user, level, streak and badges. Cached profiles live
// until the TTL or the next progression event for the user.
func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	level, err := s.progression.GetLevelInfo(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.progression.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	badges, err := s.progression.GetEarnedBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{User: u, Level: *level, Streak: *streak, Badges: badges}
	s.cache.Set(userID, p)
	return p, nil
}

func validateUpdate(update domain.ProfileUpdate) error {
	if update.Bio != nil && len(*update.Bio) > MaxBioLength {
		return fmt.Errorf("%w: bio exceeds %d characters", domain.ErrInvalidInput, MaxBioLength)
	}
	if update.AvatarURL != nil && *update.AvatarURL != "" {
		if len(*update.AvatarURL) > MaxAvatarURLLength {
			return fmt.Errorf("%w: avatar url too long", domain.ErrInvalidInput)
		}
		u, err := url.Parse(*update.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: avatar url must be an http(s) url", domain.ErrInvalidInput)
		}
	}
	if update.GithubUsername != nil {
		name := *update.GithubUsername
		if len(name) > MaxGithubUsernameLength || strings.ContainsAny(name, " /@") {
			return fmt.Errorf("%w: invalid github username", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}
	u, err := s.repo.UpdateProfile(ctx, userID, update, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)
	logger.FromContext(ctx).Info(LogMsgProfileUpdated, "user_id", userID)
	return u, nil
}

func (s *service) InvalidateProfile(userID string) {
	s.cache.Invalidate(userID)
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}
