package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
)

// serve routes a single request through a chi router so URL params resolve.
// A non-empty userID is placed on the context as the bearer middleware would.
func serve(t *testing.T, method, pattern, target string, body interface{}, userID string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*auth.Result, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*auth.Result, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *MockAuthService) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) InvalidateProfile(userID string) {
	m.Called(userID)
}

func (m *MockUserService) GetCacheStats() user.CacheStats {
	return m.Called().Get(0).(user.CacheStats)
}

type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) AwardXP(ctx context.Context, userID string, award domain.XPAward, opts ...gamification.AwardOption) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, userID, award)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionResult), args.Error(1)
}

func (m *MockProgressionService) StageXP(ctx context.Context, tx repository.Tx, userID string, award domain.XPAward, opts ...gamification.AwardOption) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, tx, userID, award)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionResult), args.Error(1)
}

func (m *MockProgressionService) Announce(ctx context.Context, award domain.XPAward, result *domain.ProgressionResult) {
	m.Called(ctx, award, result)
}

func (m *MockProgressionService) RecordActivity(ctx context.Context, userID string, opts ...gamification.AwardOption) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionResult), args.Error(1)
}

func (m *MockProgressionService) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressionService) GetLevelInfo(ctx context.Context, userID string) (*domain.LevelInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LevelInfo), args.Error(1)
}

func (m *MockProgressionService) GetStreak(ctx context.Context, userID string) (*domain.StreakInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakInfo), args.Error(1)
}

func (m *MockProgressionService) GetEarnedBadges(ctx context.Context, userID string) ([]gamification.EarnedBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gamification.EarnedBadge), args.Error(1)
}

func (m *MockProgressionService) BadgeCatalog() []gamification.BadgeRule {
	return m.Called().Get(0).([]gamification.BadgeRule)
}

func (m *MockProgressionService) GetBadge(badgeID string) (*gamification.BadgeRule, error) {
	args := m.Called(badgeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gamification.BadgeRule), args.Error(1)
}

func (m *MockProgressionService) LevelTable() []domain.LevelThreshold {
	return m.Called().Get(0).([]domain.LevelThreshold)
}

func (m *MockProgressionService) ResolveLevel(totalXP int64) (domain.LevelInfo, error) {
	args := m.Called(totalXP)
	return args.Get(0).(domain.LevelInfo), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Top(ctx context.Context, limit, offset int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) UserRank(ctx context.Context, userID string) (*domain.UserRank, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRank), args.Error(1)
}

func (m *MockLeaderboardService) Invalidate() {
	m.Called()
}

func (m *MockLeaderboardService) CacheStats() leaderboard.CacheStats {
	return m.Called().Get(0).(leaderboard.CacheStats)
}
