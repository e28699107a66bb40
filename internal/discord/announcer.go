package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// Sender is the subset of *discordgo.Session the announcer needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// UserLookup resolves display names
type UserLookup interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// Config holds the announcer configuration
type Config struct {
	Token     string
	ChannelID string
}

// Announcer posts progression milestones to a Discord channel
type Announcer struct {
	sender    Sender
	channelID string
	users     UserLookup
}

// NewAnnouncer creates an announcer on an existing sender
func NewAnnouncer(sender Sender, channelID string, users UserLookup) *Announcer {
	return &Announcer{sender: sender, channelID: channelID, users: users}
}

// Open connects a bot session. It returns (nil, nil, nil) when the token or
// channel is not configured.
func Open(ctx context.Context, cfg Config, users UserLookup) (*Announcer, func() error, error) {
	if cfg.Token == "" || cfg.ChannelID == "" {
		return nil, nil, nil
	}
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, nil, fmt.Errorf("error opening Discord connection: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgAnnouncerReady, "channel_id", cfg.ChannelID)
	return NewAnnouncer(s, cfg.ChannelID, users), s.Close, nil
}

// Register subscribes the announcer to milestone events
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.LevelUp, a.HandleLevelUp)
	bus.Subscribe(event.BadgeEarned, a.HandleBadgeEarned)
	bus.Subscribe(event.QuestCompleted, a.HandleQuestCompleted)
}

func (a *Announcer) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.LevelUpPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	name := a.displayName(ctx, p.UserID)
	return a.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Level Up! %s", p.Title),
		Description: fmt.Sprintf("**%s** reached **level %d**!", name, p.LevelAfter),
		Color:       ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Previous Level", Value: fmt.Sprintf("%d", p.LevelBefore), Inline: true},
			{Name: "New Level", Value: fmt.Sprintf("%d", p.LevelAfter), Inline: true},
		},
		Timestamp: time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterLevels},
	})
}

func (a *Announcer) HandleBadgeEarned(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.BadgeEarnedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	name := a.displayName(ctx, p.UserID)
	return a.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Badge Earned", p.Icon),
		Description: fmt.Sprintf("**%s** earned the **%s** badge!", name, p.Name),
		Color:       ColorPurple,
		Timestamp:   time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterBadges},
	})
}

func (a *Announcer) HandleQuestCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.QuestCompletedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	name := a.displayName(ctx, p.UserID)
	return a.send(ctx, evt.Type, &discordgo.MessageEmbed{
		Title:       "Quest Complete",
		Description: fmt.Sprintf("**%s** finished **%s**!", name, p.Title),
		Color:       ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Quest XP", Value: fmt.Sprintf("%d", p.XPEarned), Inline: true},
		},
		Timestamp: time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: FooterQuests},
	})
}

func (a *Announcer) displayName(ctx context.Context, userID string) string {
	if a.users == nil {
		return unknownLearner
	}
	u, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgNameLookupFailed, "user_id", userID, "error", err)
		return unknownLearner
	}
	return u.Username
}

func (a *Announcer) send(ctx context.Context, eventType event.Type, embed *discordgo.MessageEmbed) error {
	log := logger.FromContext(ctx)
	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		log.Error(LogMsgAnnouncementError, "event_type", eventType, "error", err)
		return err
	}
	log.Info(LogMsgAnnouncementSent, "event_type", eventType)
	return nil
}
