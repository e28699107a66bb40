package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/database/postgres"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User         repository.User
	Progress     repository.Progress
	Quest        repository.Quest
	Tutorial     repository.Tutorial
	Submission   repository.Submission
	Leaderboard  repository.Leaderboard
	Notification repository.Notification
	Contribution repository.Contribution
	Analytics    repository.Analytics
}

// InitializeRepositories creates the postgres repositories on a shared pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         postgres.NewUserRepository(dbPool),
		Progress:     postgres.NewProgressRepository(dbPool),
		Quest:        postgres.NewQuestRepository(dbPool),
		Tutorial:     postgres.NewTutorialRepository(dbPool),
		Submission:   postgres.NewSubmissionRepository(dbPool),
		Leaderboard:  postgres.NewLeaderboardRepository(dbPool),
		Notification: postgres.NewNotificationRepository(dbPool),
		Contribution: postgres.NewContributionRepository(dbPool),
		Analytics:    postgres.NewAnalyticsRepository(dbPool),
	}
}
