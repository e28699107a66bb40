package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rishav-026/Gamified-Coding-platform/internal/analytics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/assistant"
	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/concurrency"
	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/contribution"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
	"github.com/rishav-026/Gamified-Coding-platform/internal/notification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/quest"
	"github.com/rishav-026/Gamified-Coding-platform/internal/server"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
	"github.com/rishav-026/Gamified-Coding-platform/internal/submission"
	"github.com/rishav-026/Gamified-Coding-platform/internal/tutorial"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
	"github.com/rishav-026/Gamified-Coding-platform/internal/worker"
)

// ServiceDependencies holds what the service layer is built from
type ServiceDependencies struct {
	Config       *config.Config
	Repositories *Repositories
	Catalog      *catalog.Catalog
	Publisher    event.Publisher
	Hub          *sse.Hub
	Clock        clock.Clock
}

// Application is the wired service graph plus the background components main has to run
type Application struct {
	Services       server.Services
	ReminderWorker *worker.StreakReminderWorker
}

// InitializeServices builds every domain service. The AI assistant is left
// unavailable when no Gemini key is configured.
func InitializeServices(ctx context.Context, deps ServiceDependencies) (*Application, error) {
	cfg := deps.Config
	repos := deps.Repositories
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewReal()
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateTokens, err)
	}

	progression := gamification.NewService(repos.Progress, gamification.NewDefaultEngine(), clk, deps.Publisher, concurrency.NewLockManager())

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Services: server.Services{
			Auth:          auth.NewService(repos.User, tokens, clk),
			Users:         user.NewService(repos.User, progression, clk, user.DefaultCacheConfig()),
			Progression:   progression,
			Quests:        quest.NewService(repos.Quest, deps.Catalog, progression, clk, deps.Publisher),
			Tutorials:     tutorial.NewService(repos.Tutorial, deps.Catalog, progression, clk),
			Submissions:   submission.NewService(repos.Submission, deps.Catalog, submission.NewStaticChecker(), progression, clk),
			Leaderboard:   leaderboard.NewService(repos.Leaderboard, cfg.LeaderboardCacheTTL),
			Notifications: notification.NewService(repos.Notification, clk, deps.Hub),
			Assistant:     assistant.NewService(gen, assistant.NewHistoryStore(assistant.DefaultHistoryUsers, cfg.AIHistoryLimit), clk),
			Analytics:     analytics.NewService(repos.Analytics, clk),
			Contributions: contribution.NewService(contribution.NewGitHubClient(cfg.GithubToken, nil), repos.User, repos.Contribution, progression, clk),
			Hub:           deps.Hub,
		},
		ReminderWorker: worker.NewStreakReminderWorker(repos.Progress, deps.Publisher, clk, cfg.StreakReminderHourUTC),
	}
	return app, nil
}

// newGenerator returns a nil interface, not a typed nil, when Gemini is off
func newGenerator(ctx context.Context, cfg *config.Config) (assistant.Generator, error) {
	gemini, err := assistant.NewGeminiGenerator(ctx, assistant.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		MaxTokens:   cfg.GeminiMaxTokens,
		Temperature: cfg.GeminiTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateGenerator, err)
	}
	if gemini == nil {
		slog.Warn(LogMsgAssistantDisabled)
		return nil, nil
	}
	slog.Info(LogMsgAssistantEnabled, "model", gemini.Model())
	return gemini, nil
}
