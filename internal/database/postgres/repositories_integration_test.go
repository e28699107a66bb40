package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

func TestUserRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	u := createTestUser(t, pool, now)
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetUserByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.IsActive)

	_, err = repo.GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)

	dup := &domain.User{Username: u.Username, Email: "other" + u.Email, PasswordHash: "x", CreatedAt: now}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), domain.ErrUsernameTaken)

	dup = &domain.User{Username: u.Username + "x", Email: u.Email, PasswordHash: "x", CreatedAt: now}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), domain.ErrEmailTaken)

	bio := "learning go"
	updated, err := repo.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Bio: &bio}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "", updated.AvatarURL)

	_, err = repo.GetUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestQuestRepository_Flow(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewQuestRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)

	_, err := repo.GetQuestProgress(ctx, u.ID, "quest_1")
	assert.ErrorIs(t, err, domain.ErrQuestNotStarted)

	qp, err := repo.StartQuest(ctx, u.ID, "quest_1", 2, now)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestStatusInProgress, qp.Status)

	_, err = repo.StartQuest(ctx, u.ID, "quest_1", 2, now)
	assert.ErrorIs(t, err, domain.ErrQuestAlreadyStarted)

	complete := func(taskID string) error {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		p, err := tx.GetQuestProgressForUpdate(ctx, u.ID, "quest_1")
		require.NoError(t, err)
		if err := tx.RecordTaskCompletion(ctx, u.ID, "quest_1", domain.TaskProgress{TaskID: taskID, XPEarned: 50, CompletedAt: now}); err != nil {
			return err
		}
		p.TasksCompleted++
		p.XPEarned += 50
		if p.TasksCompleted == p.TotalTasks {
			p.Status = domain.QuestStatusCompleted
			p.CompletedAt = &now
		}
		require.NoError(t, tx.UpdateQuestProgress(ctx, p))
		return tx.Commit(ctx)
	}

	require.NoError(t, complete("t1"))
	assert.ErrorIs(t, complete("t1"), domain.ErrTaskAlreadyCompleted)
	require.NoError(t, complete("t2"))

	qp, err = repo.GetQuestProgress(ctx, u.ID, "quest_1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuestStatusCompleted, qp.Status)
	assert.Len(t, qp.Tasks, 2)

	list, err := repo.ListQuestProgress(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Tasks, 2)

	stats, err := repo.GetQuestStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestStats{QuestsStarted: 1, QuestsCompleted: 1, TasksCompleted: 2, QuestXP: 100}, *stats)

	ptx, err := NewProgressRepository(pool).BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, ptx)
	n, err := ptx.CountCompletedQuests(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTutorialRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewTutorialRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	existing, err := tx.GetTutorialProgressForUpdate(ctx, u.ID, "git-basics")
	require.NoError(t, err)
	assert.Nil(t, existing)
	require.NoError(t, tx.UpsertTutorialProgress(ctx, domain.TutorialProgress{
		UserID: u.ID, TutorialID: "git-basics", QuizScore: 50, XPEarned: 25, Attempts: 1, CompletedAt: now,
	}))
	require.NoError(t, tx.Commit(ctx))

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	existing, err = tx.GetTutorialProgressForUpdate(ctx, u.ID, "git-basics")
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, 1, existing.Attempts)
	existing.Attempts++
	existing.Completed = true
	existing.QuizScore = 90
	existing.XPEarned = 50
	require.NoError(t, tx.UpsertTutorialProgress(ctx, *existing))
	require.NoError(t, tx.Commit(ctx))

	list, err := repo.ListTutorialProgress(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)
	assert.Equal(t, 2, list[0].Attempts)
	assert.Equal(t, int64(50), list[0].XPEarned)
}

func TestSubmissionRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewSubmissionRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)

	s := &domain.Submission{UserID: u.ID, TaskID: "task_1_1", Code: "print(1)", Language: "python",
		Status: domain.SubmissionPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateSubmission(ctx, s))

	got, err := repo.GetSubmission(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TestResults)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetSubmissionForUpdate(ctx, s.ID)
	require.NoError(t, err)
	locked.Status = domain.SubmissionPassed
	locked.TestResults = &domain.TestResults{Total: 1, Passed: 1, AllPassed: true, Cases: []domain.TestResult{{Name: "non_empty", Status: "passed"}}}
	locked.XPAwarded = domain.SubmissionPassXP
	require.NoError(t, tx.UpdateSubmissionResult(ctx, locked))
	require.NoError(t, tx.Commit(ctx))

	got, err = repo.GetSubmission(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TestResults)
	assert.True(t, got.TestResults.AllPassed)
	assert.Equal(t, domain.SubmissionPassXP, got.XPAwarded)

	list, err := repo.ListSubmissions(ctx, u.ID, "task_1_1", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = repo.ListSubmissions(ctx, u.ID, "other", 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.GetSubmission(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestNotificationRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewNotificationRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)
	other := createTestUser(t, pool, now)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(ctx, &domain.Notification{
			UserID: u.ID, Type: domain.NotificationBadge, Title: "Badge", CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	list, err := repo.ListNotifications(ctx, u.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[2].CreatedAt), "newest first")

	assert.ErrorIs(t, repo.MarkRead(ctx, other.ID, list[0].ID), domain.ErrNotificationNotFound)
	require.NoError(t, repo.MarkRead(ctx, u.ID, list[0].ID))

	unread, err := repo.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	onlyUnread, err := repo.ListNotifications(ctx, u.ID, true, 10)
	require.NoError(t, err)
	assert.Len(t, onlyUnread, 2)

	n, err := repo.MarkAllRead(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLeaderboardAndAnalytics(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	progress := NewProgressRepository(pool)
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	// Large XP values keep these users above anything other tests create
	first := createTestUser(t, pool, base)
	second := createTestUser(t, pool, base.Add(time.Hour))
	for _, c := range []struct {
		id string
		xp int64
	}{{first.ID, 9_000_000}, {second.ID, 9_000_000}} {
		tx, err := progress.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.ApplyProgressionDelta(ctx, domain.ProgressionDelta{UserID: c.id, TotalXP: c.xp, Level: 10, LastActivity: base}))
		require.NoError(t, tx.RecordXPEvent(ctx, domain.XPEvent{UserID: c.id, Amount: c.xp, Source: domain.XPSourceAdmin, OccurredAt: base}))
		require.NoError(t, tx.Commit(ctx))
	}

	lb := NewLeaderboardRepository(pool)
	top, err := lb.TopByXP(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, first.ID, top[0].UserID, "ties go to the earlier account")
	assert.Equal(t, second.ID, top[1].UserID)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 1, top[1].Rank, "tied XP shares a rank")

	rank, err := lb.GetUserRank(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, top[1].Rank, rank.Rank)
	assert.GreaterOrEqual(t, rank.TotalUsers, 2)

	an := NewAnalyticsRepository(pool)
	summary, err := an.GetSummary(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9_000_000), summary.TotalXP)
	assert.Equal(t, 1, summary.ActiveDays)

	days, err := an.GetDailyXP(ctx, first.ID, base.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2000-01-01", days[0].Date)
	assert.Equal(t, 1, days[0].Events)
}

func TestContributionRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewContributionRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)

	c, err := repo.GetCursor(ctx, u.ID, "octo/repo", domain.ContributionPullRequest)
	require.NoError(t, err)
	assert.Zero(t, c.Credited)
	assert.Nil(t, c.At)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	c, err = tx.GetCursorForUpdate(ctx, u.ID, "octo/repo", domain.ContributionPullRequest)
	require.NoError(t, err)
	assert.Zero(t, c.Credited)
	at := now.Add(-time.Hour)
	next := domain.ContributionCursor{Credited: 3, At: &at, Ref: "42"}
	require.NoError(t, tx.AdvanceCursor(ctx, u.ID, "octo/repo", domain.ContributionPullRequest, next, now))
	require.NoError(t, tx.Commit(ctx))

	c, err = repo.GetCursor(ctx, u.ID, "octo/repo", domain.ContributionPullRequest)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Credited)
	assert.Equal(t, "42", c.Ref)
	require.NotNil(t, c.At)
	assert.True(t, at.Equal(*c.At))

	ptx, err := NewProgressRepository(pool).BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, ptx)
	n, err := ptx.CountContributions(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestProgressRepository_JoinTx(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	contributions := NewContributionRepository(pool)
	progress := NewProgressRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := createTestUser(t, pool, now)

	write := func(commit bool) {
		tx, err := contributions.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		_, err = tx.GetCursorForUpdate(ctx, u.ID, "octo/repo", domain.ContributionCommit)
		require.NoError(t, err)
		require.NoError(t, tx.AdvanceCursor(ctx, u.ID, "octo/repo", domain.ContributionCommit,
			domain.ContributionCursor{Credited: 1, At: &now, Ref: "abc"}, now))

		joined, err := progress.JoinTx(tx)
		require.NoError(t, err)
		require.NoError(t, joined.ApplyProgressionDelta(ctx, domain.ProgressionDelta{
			UserID: u.ID, TotalXP: 50, Level: 1, CurrentStreak: 1, LongestStreak: 1, LastActivity: now,
		}))
		// The joined handle never ends the owner's transaction
		require.NoError(t, joined.Commit(ctx))

		if commit {
			require.NoError(t, tx.Commit(ctx))
		}
	}

	write(false)
	c, err := contributions.GetCursor(ctx, u.ID, "octo/repo", domain.ContributionCommit)
	require.NoError(t, err)
	assert.Zero(t, c.Credited)
	p, err := progress.GetUserProgress(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, p.TotalXP)

	write(true)
	c, err = contributions.GetCursor(ctx, u.ID, "octo/repo", domain.ContributionCommit)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Credited)
	p, err = progress.GetUserProgress(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.TotalXP)

	_, err = progress.JoinTx(&struct{ repository.Tx }{})
	assert.Error(t, err)
}
