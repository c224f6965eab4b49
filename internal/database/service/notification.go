package service

import (
	"context"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/dbretry"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/models"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"go.uber.org/zap"
)

// NotificationService wraps the notification store's read and read-state
// paths with retry handling. All operations act only on the caller's own
// notifications.
type NotificationService struct {
	model  *models.NotificationModel
	logger *zap.Logger
}

// NewNotification creates a new notification service.
func NewNotification(model *models.NotificationModel, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		model:  model,
		logger: logger.Named("notification_service"),
	}
}

// ListForUser returns a user's visible notifications, newest first.
func (s *NotificationService) ListForUser(
	ctx context.Context, userID int64, params types.ListNotificationsParams,
) ([]*types.Notification, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Notification, error) {
		return s.model.ListForUser(ctx, userID, params)
	})
}

// UnreadCount returns the number of visible unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		return s.model.UnreadCount(ctx, userID)
	})
}

// MarkRead marks one of the user's notifications as read; idempotent.
func (s *NotificationService) MarkRead(
	ctx context.Context, notificationID, userID int64,
) (*types.Notification, error) {
	return s.model.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read and returns the
// number of rows updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	return s.model.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, notificationID, userID int64) error {
	return s.model.Delete(ctx, notificationID, userID)
}
