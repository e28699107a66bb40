package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// NotificationRepository implements repository.Notification
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

var _ repository.Notification = (*NotificationRepository)(nil)

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, err := parseUserUUID(n.UserID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (notification_id, user_id, type, title, message, action_url, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.ActionURL, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", mapUserFK(err))
	}
	return nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT notification_id, user_id, type, title, message, action_url, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2::boolean OR NOT is_read)
		ORDER BY created_at DESC, notification_id
		LIMIT $3`, userID, unreadOnly, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Notification])
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}
	return list, nil
}

// MarkRead fails with ErrNotificationNotFound when the notification is not the user's
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	if _, err := uuid.Parse(notificationID); err != nil {
		return domain.ErrNotificationNotFound
	}
	if _, err := parseUserUUID(userID); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}
