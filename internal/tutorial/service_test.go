package tutorial

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// memoryTutorials is an in-memory repository.Tutorial. Writes become visible on Commit.
type memoryTutorials struct {
	mu   sync.Mutex
	rows map[string]domain.TutorialProgress
}

func newMemoryTutorials() *memoryTutorials {
	return &memoryTutorials{rows: make(map[string]domain.TutorialProgress)}
}

func (m *memoryTutorials) ListTutorialProgress(_ context.Context, userID string) ([]domain.TutorialProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TutorialProgress
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TutorialID < out[j].TutorialID })
	return out, nil
}

func (m *memoryTutorials) BeginTx(context.Context) (repository.TutorialTx, error) {
	return &memoryTutorialTx{repo: m}, nil
}

type memoryTutorialTx struct {
	repo    *memoryTutorials
	pending *domain.TutorialProgress
	done    bool
}

func (t *memoryTutorialTx) GetTutorialProgressForUpdate(_ context.Context, userID, tutorialID string) (*domain.TutorialProgress, error) {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	p, ok := t.repo.rows[userID+"/"+tutorialID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memoryTutorialTx) UpsertTutorialProgress(_ context.Context, p domain.TutorialProgress) error {
	t.pending = &p
	return nil
}

func (t *memoryTutorialTx) Commit(context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	if t.pending != nil {
		t.repo.mu.Lock()
		t.repo.rows[t.pending.UserID+"/"+t.pending.TutorialID] = *t.pending
		t.repo.mu.Unlock()
	}
	return nil
}

func (t *memoryTutorialTx) Rollback(context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	return nil
}

// MockProgression records StageXP and Announce calls
type MockProgression struct {
	gamification.Service
	mock.Mock
}

func (m *MockProgression) StageXP(ctx context.Context, tx repository.Tx, userID string, award domain.XPAward, opts ...gamification.AwardOption) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, tx, userID, award)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionResult), args.Error(1)
}

func (m *MockProgression) Announce(ctx context.Context, award domain.XPAward, result *domain.ProgressionResult) {
	m.Called(ctx, award, result)
}

const testTutorialsYAML = `
tutorials:
  - {id: basics, title: Basics, difficulty: beginner, xp_reward: 100, order: 1}
  - {id: branching, title: Branching, difficulty: intermediate, xp_reward: 150, order: 2}
`

var tutorialNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *memoryTutorials, *MockProgression, *clock.Simulated) {
	t.Helper()
	cat, err := catalog.Parse(nil, []byte(testTutorialsYAML))
	require.NoError(t, err)
	repo := newMemoryTutorials()
	prog := new(MockProgression)
	clk := clock.NewSimulated(tutorialNow)
	return NewService(repo, cat, prog, clk), repo, prog, clk
}

func TestListGetNext(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	list := svc.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "basics", list[0].ID)

	tut, err := svc.Get(ctx, "branching")
	require.NoError(t, err)
	assert.Equal(t, int64(150), tut.XPReward)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTutorialNotFound)

	next, err := svc.Next(ctx, "basics")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "branching", next.ID)

	next, err = svc.Next(ctx, "branching")
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = svc.Next(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTutorialNotFound)
}

func TestComplete_TopsUpOnlyTheDifference(t *testing.T) {
	ctx := context.Background()
	svc, repo, prog, clk := newTestService(t)

	award := func(amount int64) domain.XPAward {
		return domain.XPAward{Amount: amount, Source: domain.XPSourceTutorial, SourceID: "basics"}
	}
	prog.On("StageXP", ctx, mock.Anything, "u-1", mock.Anything).Return(&domain.ProgressionResult{}, nil)
	prog.On("Announce", ctx, mock.Anything, mock.Anything).Return()

	// 50% earns half the reward
	got, err := svc.Complete(ctx, "u-1", "basics", 50)
	require.NoError(t, err)
	assert.False(t, got.Passed)
	assert.Equal(t, int64(50), got.XPEarned)
	assert.Equal(t, "branching", got.NextID)

	// A worse retry earns nothing but still counts as activity
	clk.AdvanceDays(1)
	got, err = svc.Complete(ctx, "u-1", "basics", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.XPEarned)

	// Passing tops up to the full reward
	got, err = svc.Complete(ctx, "u-1", "basics", 90)
	require.NoError(t, err)
	assert.True(t, got.Passed)
	assert.Equal(t, int64(50), got.XPEarned)

	// A perfect score after passing adds nothing
	got, err = svc.Complete(ctx, "u-1", "basics", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.XPEarned)

	prog.AssertCalled(t, "StageXP", ctx, mock.Anything, "u-1", award(50))
	prog.AssertCalled(t, "StageXP", ctx, mock.Anything, "u-1", award(0))
	prog.AssertNumberOfCalls(t, "StageXP", 4)
	prog.AssertNumberOfCalls(t, "Announce", 4)

	var total int64
	for _, c := range prog.Calls {
		if c.Method == "StageXP" {
			total += c.Arguments.Get(3).(domain.XPAward).Amount
		}
	}
	assert.Equal(t, int64(100), total, "lifetime tutorial XP never exceeds the reward")

	rows, err := repo.ListTutorialProgress(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, 100.0, rows[0].QuizScore)
	assert.Equal(t, int64(100), rows[0].XPEarned)
	assert.Equal(t, 4, rows[0].Attempts)
	assert.Equal(t, tutorialNow.AddDate(0, 0, 1), rows[0].CompletedAt, "completion time is the first passing attempt")
}

func TestComplete_InvalidInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		tutorialID string
		score      float64
		wantErr    error
	}{
		{"unknown tutorial", "missing", 80, domain.ErrTutorialNotFound},
		{"negative score", "basics", -1, domain.ErrInvalidInput},
		{"score above 100", "basics", 100.5, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, prog, _ := newTestService(t)
			_, err := svc.Complete(ctx, "u-1", tt.tutorialID, tt.score)
			assert.ErrorIs(t, err, tt.wantErr)
			prog.AssertNotCalled(t, "StageXP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestComplete_ProgressionFailureRollsBackAttempt(t *testing.T) {
	ctx := context.Background()
	svc, repo, prog, _ := newTestService(t)
	prog.On("StageXP", ctx, mock.Anything, "u-1", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := svc.Complete(ctx, "u-1", "branching", 75)
	require.Error(t, err)
	assert.Empty(t, repo.rows)
	prog.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything, mock.Anything)

	// The retry is a first attempt again and earns the full amount
	prog.On("StageXP", ctx, mock.Anything, "u-1", mock.Anything).Return(&domain.ProgressionResult{}, nil).Once()
	prog.On("Announce", ctx, mock.Anything, mock.Anything).Return().Once()

	got, err := svc.Complete(ctx, "u-1", "branching", 75)
	require.NoError(t, err)
	assert.Equal(t, int64(112), got.XPEarned)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, 1, repo.rows["u-1/branching"].Attempts)
	prog.AssertExpectations(t)
}
