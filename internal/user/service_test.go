package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, at time.Time) (*domain.User, error) {
	args := m.Called(ctx, userID, update, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubProgression implements the read side used by profiles
type stubProgression struct {
	gamification.Service
	calls int
}

func (s *stubProgression) GetLevelInfo(context.Context, string) (*domain.LevelInfo, error) {
	s.calls++
	return &domain.LevelInfo{Level: 3, Title: "Novice", TotalXP: 300}, nil
}

func (s *stubProgression) GetStreak(context.Context, string) (*domain.StreakInfo, error) {
	return &domain.StreakInfo{CurrentStreak: 2, LongestStreak: 4}, nil
}

func (s *stubProgression) GetEarnedBadges(context.Context, string) ([]gamification.EarnedBadge, error) {
	return []gamification.EarnedBadge{}, nil
}

var userNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func TestGetProfile_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	prog := &stubProgression{}
	svc := NewService(repo, prog, clock.NewSimulated(userNow), CacheConfig{Size: 10, TTL: time.Minute})

	repo.On("GetUserByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Username: "octocat"}, nil)

	p, err := svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Level.Level)
	assert.Equal(t, 2, p.Streak.CurrentStreak)

	_, err = svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, prog.calls, "second read is served from cache")
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1, Size: 1}, svc.GetCacheStats())

	handler := NewEventHandler(svc)
	require.NoError(t, handler.HandleProgression(ctx, event.NewXPAwardedEvent("u-1", domain.XPAward{Amount: 10}, 310, userNow)))

	_, err = svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, prog.calls)
	repo.AssertNumberOfCalls(t, "GetUserByID", 2)
}

func TestGetProfile_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewService(repo, &stubProgression{}, clock.NewSimulated(userNow), DefaultCacheConfig())
	repo.On("GetUserByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Zero(t, svc.GetCacheStats().Size)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		update  domain.ProfileUpdate
		wantErr bool
	}{
		{"bio", domain.ProfileUpdate{Bio: ptr("hello")}, false},
		{"clear avatar", domain.ProfileUpdate{AvatarURL: ptr("")}, false},
		{"https avatar", domain.ProfileUpdate{AvatarURL: ptr("https://example.com/a.png")}, false},
		{"javascript avatar", domain.ProfileUpdate{AvatarURL: ptr("javascript:alert(1)")}, true},
		{"github with slash", domain.ProfileUpdate{GithubUsername: ptr("a/b")}, true},
		{"long bio", domain.ProfileUpdate{Bio: ptr(string(make([]byte, MaxBioLength+1)))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := NewService(repo, &stubProgression{}, clock.NewSimulated(userNow), DefaultCacheConfig())
			repo.On("UpdateProfile", ctx, "u-1", tt.update, userNow).Return(&domain.User{ID: "u-1"}, nil)

			_, err := svc.UpdateProfile(ctx, "u-1", tt.update)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProfileCache_Expiry(t *testing.T) {
	c := newProfileCache(CacheConfig{Size: 2, TTL: 20 * time.Millisecond})
	c.Set("u-1", &Profile{})

	_, ok := c.Get("u-1")
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("u-1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
