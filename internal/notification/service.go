package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
	"github.com/rishav-026/Gamified-Coding-platform/internal/sse"
)

// Pusher delivers a live event to the user's open streams
type Pusher interface {
	Send(userID, eventType string, payload interface{})
}

// Service defines the notification business logic
type Service interface {
	Create(ctx context.Context, userID, kind, title, message, actionURL string) (*domain.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo   repository.Notification
	clock  clock.Clock
	pusher Pusher
}

// NewService creates a new notification service. pusher may be nil.
func NewService(repo repository.Notification, clk clock.Clock, pusher Pusher) Service {
	return &service{repo: repo, clock: clk, pusher: pusher}
}

func validKind(kind string) bool {
	switch kind {
	case domain.NotificationAchievement, domain.NotificationLevelUp, domain.NotificationBadge,
		domain.NotificationReminder, domain.NotificationSystem:
		return true
	}
	return false
}

// Create stores the notification and pushes it to any open stream of the user
func (s *service) Create(ctx context.Context, userID, kind, title, message, actionURL string) (*domain.Notification, error) {
	if !validKind(kind) {
		return nil, fmt.Errorf("%w: unknown notification type %q", domain.ErrInvalidInput, kind)
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", domain.ErrInvalidInput, MaxTitleLength)
	}
	if len(message) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrInvalidInput, MaxMessageLength)
	}

	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgNotificationCreated, "user_id", userID, "type", kind)
	if s.pusher != nil {
		s.pusher.Send(userID, sse.EventTypeNotification, *n)
	}
	return n, nil
}

func (s *service) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListNotifications(ctx, userID, unreadOnly, limit)
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead reports ErrNotificationNotFound for another user's notification
func (s *service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
