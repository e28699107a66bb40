package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/discord"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/notification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus            event.Bus
	UserService         user.Service
	LeaderboardService  leaderboard.Service
	NotificationService notification.Service
	UserRepository      repository.User
	Hub                 *sse.Hub
	Config              *config.Config
}

// RegisterEventHandlers subscribes every progression consumer to the bus.
// The returned closer shuts the Discord session and is nil when the announcer is off.
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) (func() error, error) {
	user.NewEventHandler(deps.UserService).Register(deps.EventBus)
	leaderboard.NewEventHandler(deps.LeaderboardService).Register(deps.EventBus)
	notification.NewEventHandler(deps.NotificationService).Register(deps.EventBus)
	sse.NewSubscriber(deps.Hub).Register(deps.EventBus)
	slog.Info(LogMsgEventHandlersRegistered)

	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	announcer, closeDiscord, err := discord.Open(ctx, discord.Config{
		Token:     deps.Config.DiscordBotToken,
		ChannelID: deps.Config.DiscordAnnounceChannelID,
	}, deps.UserRepository)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDiscord, err)
	}
	if announcer == nil {
		slog.Info(LogMsgDiscordDisabled)
		return nil, nil
	}
	announcer.Register(deps.EventBus)
	slog.Info(LogMsgDiscordAnnouncerRegistered)

	return closeDiscord, nil
}
