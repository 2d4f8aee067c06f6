package service

import (
	"context"
	"errors"

	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"

	"go.uber.org/zap"
)

// NotificationService handles user notifications
type NotificationService struct {
	notifRepo *repository.NotificationRepository
	logger    *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo *repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		logger:    logger,
	}
}

// Create records a notification for a user
func (s *NotificationService) Create(ctx context.Context, create *model.NotificationCreate) error {
	_, err := s.notifRepo.Create(ctx, create)
	return err
}

// List retrieves a page of the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID, page, limit int, unreadOnly bool) ([]model.Notification, int, error) {
	offset := (page - 1) * limit

	notifications, err := s.notifRepo.ListByUser(ctx, userID, limit, offset, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.notifRepo.Count(ctx, userID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CountUnread returns the caller's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID int) (int, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	marked, err := s.notifRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !marked {
		return errors.New("notification not found")
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) (int, error) {
	count, err := s.notifRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("notifications marked read", zap.Int("userID", userID), zap.Int("count", count))
	return count, nil
}
