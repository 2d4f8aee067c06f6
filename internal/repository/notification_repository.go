package repository

import (
	"context"

	"github.com/connecthq/connect/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, create *model.NotificationCreate) (int, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, message, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query,
		create.UserID, create.Type, create.Title, create.Message, create.Link)
	if err != nil {
		r.logger.Error("failed to create notification", zap.Error(err),
			zap.Int("user_id", create.UserID), zap.String("type", create.Type))
		return 0, err
	}

	return id, nil
}

// ListByUser retrieves a page of a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID, limit, offset int, unreadOnly bool) ([]model.Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1 AND ($4 = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset, unreadOnly); err != nil {
		r.logger.Error("failed to list notifications", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}

	return notifications, nil
}

// Count returns the total notification count for pagination
func (r *NotificationRepository) Count(ctx context.Context, userID int, unreadOnly bool) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND ($2 = false OR is_read = false)`,
		userID, unreadOnly)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnread returns the user's unread notification count
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks a single notification as read, scoped to its owner
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("failed to mark notification read", zap.Error(err), zap.Int("id", id))
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// MarkAllRead marks all of a user's notifications as read and returns how
// many were updated
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		r.logger.Error("failed to mark notifications read", zap.Error(err), zap.Int("user_id", userID))
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}
