package gamification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// MockProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) GetEarnedBadges(ctx context.Context, userID string) ([]domain.EarnedBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EarnedBadge), args.Error(1)
}

func (m *MockProgressRepository) ListStreaksAtRisk(ctx context.Context, from, to time.Time) ([]domain.UserProgress, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressTx), args.Error(1)
}

func (m *MockProgressRepository) JoinTx(tx repository.Tx) (repository.ProgressTx, error) {
	args := m.Called(tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressTx), args.Error(1)
}

// MockProgressTx
type MockProgressTx struct {
	mock.Mock
}

func (m *MockProgressTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProgressTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProgressTx) LoadUserProgressForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressTx) CountCompletedQuests(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressTx) CountContributions(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressTx) ApplyProgressionDelta(ctx context.Context, delta domain.ProgressionDelta) error {
	return m.Called(ctx, delta).Error(0)
}

func (m *MockProgressTx) RecordXPEvent(ctx context.Context, ev domain.XPEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

var serviceNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestService(repo repository.Progress, pub event.Publisher) (Service, *clock.Simulated) {
	clk := clock.NewSimulated(serviceNow)
	return NewService(repo, NewDefaultEngine(), clk, pub, nil), clk
}

func TestAwardXP_CommitsDeltaAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	pub := &recordingPublisher{}
	svc, _ := newTestService(repo, pub)

	yesterday := serviceNow.Add(-20 * time.Hour)
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "u-1").Return(&domain.UserProgress{
		UserID: "u-1", TotalXP: 950, Level: 4, CurrentStreak: 1, LongestStreak: 3, LastActivity: &yesterday,
	}, nil)
	tx.On("CountCompletedQuests", ctx, "u-1").Return(1, nil)
	tx.On("CountContributions", ctx, "u-1").Return(0, nil)
	tx.On("ApplyProgressionDelta", ctx, domain.ProgressionDelta{
		UserID:        "u-1",
		TotalXP:       1050,
		Level:         5,
		CurrentStreak: 2,
		LongestStreak: 3,
		LastActivity:  serviceNow,
		GrantBadges:   []string{BadgeFirstQuest, BadgeThousandXP, BadgeLevelFive},
	}).Return(nil)
	tx.On("RecordXPEvent", ctx, domain.XPEvent{
		UserID: "u-1", Amount: 100, Source: domain.XPSourceTask, SourceID: "quest_1/task_1_3", OccurredAt: serviceNow,
	}).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(domain.ErrTxClosed)

	result, err := svc.AwardXP(ctx, "u-1", domain.XPAward{Amount: 100, Source: domain.XPSourceTask, SourceID: "quest_1/task_1_3"})
	require.NoError(t, err)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, "u-1", result.UserID)
	assert.Equal(t, []event.Type{
		event.XPAwarded, event.LevelUp,
		event.BadgeEarned, event.BadgeEarned, event.BadgeEarned,
		event.StreakExtended,
	}, pub.types())
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestAwardXP_RejectsNegativeBeforeTouchingStorage(t *testing.T) {
	repo := new(MockProgressRepository)
	svc, _ := newTestService(repo, nil)

	_, err := svc.AwardXP(context.Background(), "u-1", domain.XPAward{Amount: -10, Source: domain.XPSourceAdmin})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestAwardXP_UnknownUserPropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	pub := &recordingPublisher{}
	svc, _ := newTestService(repo, pub)

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "ghost").Return(nil, domain.ErrUserNotFound)
	tx.On("Rollback", ctx).Return(nil)

	_, err := svc.AwardXP(ctx, "ghost", domain.XPAward{Amount: 10})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	tx.AssertNotCalled(t, "ApplyProgressionDelta", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, pub.types())
}

func TestAwardXP_FreshOnMissingStartsFromZero(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	svc, _ := newTestService(repo, nil)

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "new").Return(nil, domain.ErrUserNotFound)
	tx.On("CountCompletedQuests", ctx, "new").Return(0, nil)
	tx.On("CountContributions", ctx, "new").Return(0, nil)
	tx.On("ApplyProgressionDelta", ctx, mock.MatchedBy(func(d domain.ProgressionDelta) bool {
		return d.UserID == "new" && d.TotalXP == 50 && d.Level == 1 && d.CurrentStreak == 1 && len(d.GrantBadges) == 0
	})).Return(nil)
	tx.On("RecordXPEvent", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(domain.ErrTxClosed)

	result, err := svc.AwardXP(ctx, "new", domain.XPAward{Amount: 50, Source: domain.XPSourceTutorial}, FreshOnMissing())
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.TotalXP)
	tx.AssertExpectations(t)
}

func TestAwardXP_CommitFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	pub := &recordingPublisher{}
	svc, _ := newTestService(repo, pub)

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "u-1").Return(&domain.UserProgress{UserID: "u-1"}, nil)
	tx.On("CountCompletedQuests", ctx, "u-1").Return(0, nil)
	tx.On("CountContributions", ctx, "u-1").Return(0, nil)
	tx.On("ApplyProgressionDelta", ctx, mock.Anything).Return(nil)
	tx.On("RecordXPEvent", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(errors.New("connection reset"))
	tx.On("Rollback", ctx).Return(nil)

	_, err := svc.AwardXP(ctx, "u-1", domain.XPAward{Amount: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, pub.types(), "nothing is published for an uncommitted event")
}

func TestRecordActivity_NoLedgerRow(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	svc, _ := newTestService(repo, nil)

	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "u-1").Return(&domain.UserProgress{UserID: "u-1", TotalXP: 40}, nil)
	tx.On("CountCompletedQuests", ctx, "u-1").Return(0, nil)
	tx.On("CountContributions", ctx, "u-1").Return(0, nil)
	tx.On("ApplyProgressionDelta", ctx, mock.Anything).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	tx.On("Rollback", ctx).Return(domain.ErrTxClosed)

	result, err := svc.RecordActivity(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), result.TotalXP)
	assert.Equal(t, 1, result.StreakAfter)
	tx.AssertNotCalled(t, "RecordXPEvent", mock.Anything, mock.Anything)
}

func TestGetStreak_UsesClock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	svc, clk := newTestService(repo, nil)

	last := serviceNow.Add(-time.Hour)
	repo.On("GetUserProgress", ctx, "u-1").Return(&domain.UserProgress{UserID: "u-1", CurrentStreak: 5, LongestStreak: 8, LastActivity: &last}, nil)

	info, err := svc.GetStreak(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, info.ActiveToday)
	assert.Equal(t, 5, info.CurrentStreak)

	clk.AdvanceDays(1)
	info, err = svc.GetStreak(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, info.AtRisk)

	clk.AdvanceDays(1)
	info, err = svc.GetStreak(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, info.CurrentStreak)
	assert.Equal(t, 8, info.LongestStreak)
}

func TestGetLevelInfo(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	svc, _ := newTestService(repo, nil)

	repo.On("GetUserProgress", ctx, "u-1").Return(&domain.UserProgress{UserID: "u-1", TotalXP: 2500}, nil)
	repo.On("GetUserProgress", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	info, err := svc.GetLevelInfo(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 6, info.Level)

	_, err = svc.GetLevelInfo(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetEarnedBadges_CatalogOrder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	svc, _ := newTestService(repo, nil)

	repo.On("GetEarnedBadges", ctx, "u-1").Return([]domain.EarnedBadge{
		{BadgeID: BadgeSevenDayStreak, EarnedAt: serviceNow},
		{BadgeID: "retired", EarnedAt: serviceNow},
		{BadgeID: BadgeFirstQuest, EarnedAt: serviceNow.Add(-time.Hour)},
	}, nil)

	got, err := svc.GetEarnedBadges(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, BadgeFirstQuest, got[0].ID)
	assert.Equal(t, serviceNow.Add(-time.Hour), got[0].EarnedAt)
	assert.Equal(t, BadgeSevenDayStreak, got[1].ID)
}

func TestGetBadge(t *testing.T) {
	svc, _ := newTestService(new(MockProgressRepository), nil)

	b, err := svc.GetBadge(BadgeLevelTen)
	require.NoError(t, err)
	assert.Equal(t, "Level 10 Legend", b.Name)

	_, err = svc.GetBadge("missing")
	assert.ErrorIs(t, err, domain.ErrBadgeNotFound)

	assert.Len(t, svc.BadgeCatalog(), 9)
	assert.Len(t, svc.LevelTable(), 10)
}

// ownerTx stands in for a transaction begun by another repository
type ownerTx struct {
	name string
}

func (o *ownerTx) Commit(context.Context) error   { return nil }
func (o *ownerTx) Rollback(context.Context) error { return nil }

func TestStageXP_LeavesCommitAndEventsToCaller(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProgressRepository)
	tx := new(MockProgressTx)
	pub := &recordingPublisher{}
	svc, _ := newTestService(repo, pub)
	owner := &ownerTx{name: "quest"}

	award := domain.XPAward{Amount: 100, Source: domain.XPSourceTask, SourceID: "t1"}
	repo.On("JoinTx", owner).Return(tx, nil)
	tx.On("LoadUserProgressForUpdate", ctx, "u-1").Return(nil, domain.ErrUserNotFound)
	tx.On("CountCompletedQuests", ctx, "u-1").Return(1, nil)
	tx.On("CountContributions", ctx, "u-1").Return(0, nil)
	tx.On("ApplyProgressionDelta", ctx, mock.MatchedBy(func(d domain.ProgressionDelta) bool {
		return d.TotalXP == 100 && d.CurrentStreak == 1
	})).Return(nil)
	tx.On("RecordXPEvent", ctx, mock.Anything).Return(nil)

	result, err := svc.StageXP(ctx, owner, "u-1", award, FreshOnMissing())
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.TotalXP)
	assert.Contains(t, result.NewlyEarnedBadges, BadgeFirstQuest)

	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "Rollback", mock.Anything)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
	assert.Empty(t, pub.types(), "nothing is published before the owner commits")

	svc.Announce(ctx, award, result)
	types := pub.types()
	require.NotEmpty(t, types)
	assert.Equal(t, event.XPAwarded, types[0])
	assert.Contains(t, types, event.BadgeEarned)
	tx.AssertExpectations(t)
}

func TestStageXP_Errors(t *testing.T) {
	ctx := context.Background()
	owner := &ownerTx{name: "tutorial"}

	tests := []struct {
		name    string
		award   domain.XPAward
		setup   func(repo *MockProgressRepository, tx *MockProgressTx)
		wantErr error
	}{
		{
			name:    "negative amount",
			award:   domain.XPAward{Amount: -1},
			setup:   func(*MockProgressRepository, *MockProgressTx) {},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:  "foreign transaction",
			award: domain.XPAward{Amount: 10},
			setup: func(repo *MockProgressRepository, _ *MockProgressTx) {
				repo.On("JoinTx", owner).Return(nil, errors.New("cannot join"))
			},
		},
		{
			name:  "unknown user",
			award: domain.XPAward{Amount: 10},
			setup: func(repo *MockProgressRepository, tx *MockProgressTx) {
				repo.On("JoinTx", owner).Return(tx, nil)
				tx.On("LoadUserProgressForUpdate", ctx, "u-1").Return(nil, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProgressRepository)
			tx := new(MockProgressTx)
			pub := &recordingPublisher{}
			svc, _ := newTestService(repo, pub)
			tt.setup(repo, tx)

			_, err := svc.StageXP(ctx, owner, "u-1", tt.award)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			tx.AssertNotCalled(t, "Rollback", mock.Anything)
			tx.AssertNotCalled(t, "ApplyProgressionDelta", mock.Anything, mock.Anything)
			assert.Empty(t, pub.types())
		})
	}
}

func TestAnnounce_NilResult(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestService(new(MockProgressRepository), pub)

	svc.Announce(context.Background(), domain.XPAward{Amount: 10}, nil)
	assert.Empty(t, pub.types())
}

// memoryProgress is a tiny in-memory store that fails the test if two
// transactions for the same user ever overlap.
type memoryProgress struct {
	t      *testing.T
	mu     sync.Mutex
	rows   map[string]domain.UserProgress
	active map[string]bool
}

type memoryTx struct {
	store  *memoryProgress
	userID string
	delta  *domain.ProgressionDelta
	done   bool
}

func (m *memoryProgress) GetUserProgress(context.Context, string) (*domain.UserProgress, error) {
	return nil, errors.New("not used")
}

func (m *memoryProgress) GetEarnedBadges(context.Context, string) ([]domain.EarnedBadge, error) {
	return nil, errors.New("not used")
}

func (m *memoryProgress) ListStreaksAtRisk(context.Context, time.Time, time.Time) ([]domain.UserProgress, error) {
	return nil, errors.New("not used")
}

func (m *memoryProgress) BeginTx(context.Context) (repository.ProgressTx, error) {
	return &memoryTx{store: m}, nil
}

func (m *memoryProgress) JoinTx(repository.Tx) (repository.ProgressTx, error) {
	return nil, errors.New("not used")
}

func (tx *memoryTx) LoadUserProgressForUpdate(_ context.Context, userID string) (*domain.UserProgress, error) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if tx.store.active[userID] {
		tx.store.t.Errorf("concurrent transaction for %s", userID)
	}
	tx.store.active[userID] = true
	tx.userID = userID
	row := tx.store.rows[userID]
	return &row, nil
}

func (tx *memoryTx) CountCompletedQuests(context.Context, string) (int, error) { return 0, nil }
func (tx *memoryTx) CountContributions(context.Context, string) (int, error)   { return 0, nil }
func (tx *memoryTx) RecordXPEvent(context.Context, domain.XPEvent) error       { return nil }

func (tx *memoryTx) ApplyProgressionDelta(_ context.Context, d domain.ProgressionDelta) error {
	tx.delta = &d
	return nil
}

func (tx *memoryTx) Commit(context.Context) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	row := tx.store.rows[tx.userID]
	row.UserID = tx.userID
	row.TotalXP = tx.delta.TotalXP
	row.Level = tx.delta.Level
	row.CurrentStreak = tx.delta.CurrentStreak
	row.LongestStreak = tx.delta.LongestStreak
	last := tx.delta.LastActivity
	row.LastActivity = &last
	row.EarnedBadges = append(row.EarnedBadges, tx.delta.GrantBadges...)
	tx.store.rows[tx.userID] = row
	tx.store.active[tx.userID] = false
	tx.done = true
	return nil
}

func (tx *memoryTx) Rollback(context.Context) error {
	if tx.done {
		return domain.ErrTxClosed
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	tx.store.active[tx.userID] = false
	tx.done = true
	return nil
}

func TestAwardXP_ConcurrentSameUserIsSerialised(t *testing.T) {
	store := &memoryProgress{
		t:      t,
		rows:   map[string]domain.UserProgress{"u-1": {UserID: "u-1"}},
		active: map[string]bool{},
	}
	pub := &recordingPublisher{}
	svc, _ := newTestService(store, pub)

	const workers = 40
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AwardXP(context.Background(), "u-1", domain.XPAward{Amount: 30, Source: domain.XPSourceTask})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	row := store.rows["u-1"]
	assert.Equal(t, int64(workers*30), row.TotalXP)
	assert.Equal(t, 5, row.Level) // 1200 xp
	assert.ElementsMatch(t, []string{BadgeThousandXP, BadgeLevelFive}, row.EarnedBadges, "each badge granted exactly once")

	levelUps := 0
	for _, typ := range pub.types() {
		if typ == event.LevelUp {
			levelUps++
		}
	}
	assert.Equal(t, 4, levelUps) // 1->2, 2->3, 3->4, 4->5
}
