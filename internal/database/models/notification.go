package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// bulkCreateBatchSize bounds a single fan-out insert so one event cannot
// exceed statement or payload limits.
const bulkCreateBatchSize = 500

// NotificationModel handles database operations for notifications. List and
// count reads transparently exclude notifications whose referenced question
// or answer has been soft-deleted; the rows themselves are swept lazily.
type NotificationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewNotification creates a new notification model.
func NewNotification(db *bun.DB, logger *zap.Logger) *NotificationModel {
	return &NotificationModel{
		db:     db,
		logger: logger.Named("db_notification"),
	}
}

// Create inserts a single notification row.
func (r *NotificationModel) Create(ctx context.Context, notification *types.Notification) error {
	if notification.UserID == 0 {
		return types.ErrMissingRecipient
	}

	notification.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(notification).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// BulkCreate inserts notifications in independently committed batches. A
// failing batch is logged with its index and does not abort batches that
// already committed or batches still to come. Returns the number of rows
// actually inserted.
func (r *NotificationModel) BulkCreate(ctx context.Context, notifications []*types.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, notification := range notifications {
		if notification.UserID == 0 {
			return 0, types.ErrMissingRecipient
		}

		notification.CreatedAt = now
	}

	var inserted int

	for i, batch := range chunkNotifications(notifications, bulkCreateBatchSize) {
		_, err := r.db.NewInsert().
			Model(&batch).
			Exec(ctx)
		if err != nil {
			r.logger.Error("Failed to insert notification batch",
				zap.Int("batchIndex", i),
				zap.Int("batchSize", len(batch)),
				zap.Error(err))

			continue
		}

		inserted += len(batch)
	}

	return inserted, nil
}

// chunkNotifications splits notifications into batches of at most size rows.
func chunkNotifications(notifications []*types.Notification, size int) [][]*types.Notification {
	if size <= 0 {
		return [][]*types.Notification{notifications}
	}

	batches := make([][]*types.Notification, 0, (len(notifications)+size-1)/size)
	for start := 0; start < len(notifications); start += size {
		end := start + size
		if end > len(notifications) {
			end = len(notifications)
		}

		batches = append(batches, notifications[start:end])
	}

	return batches
}

// visibleQuery applies the read-time filter that hides notifications whose
// referenced question or answer has been soft-deleted.
func (r *NotificationModel) visibleQuery(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		ModelTableExpr("notifications AS n").
		Join("LEFT JOIN questions AS q ON q.id = n.question_id").
		Join("LEFT JOIN answers AS a ON a.id = n.answer_id").
		Where("(n.question_id IS NULL OR q.is_deleted = FALSE)").
		Where("(n.answer_id IS NULL OR a.is_deleted = FALSE)")
}

// ListForUser returns a user's visible notifications, newest first.
func (r *NotificationModel) ListForUser(
	ctx context.Context, userID int64, params types.ListNotificationsParams,
) ([]*types.Notification, error) {
	notifications := make([]*types.Notification, 0)

	q := r.visibleQuery(r.db.NewSelect().Model(&notifications)).
		ColumnExpr("n.*").
		Where("n.user_id = ?", userID).
		OrderExpr("n.created_at DESC")

	if params.UnreadOnly {
		q = q.Where("n.is_read = FALSE")
	}

	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}

	if params.Offset > 0 {
		q = q.Offset(params.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// UnreadCount returns the number of visible unread notifications for a user.
func (r *NotificationModel) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := r.visibleQuery(r.db.NewSelect().Model((*types.Notification)(nil))).
		Where("n.user_id = ?", userID).
		Where("n.is_read = FALSE").
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// getOwned loads a notification and verifies the caller is its recipient.
func (r *NotificationModel) getOwned(
	ctx context.Context, notificationID, userID int64,
) (*types.Notification, error) {
	var notification types.Notification

	err := r.db.NewSelect().
		Model(&notification).
		Where("id = ?", notificationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotificationNotFound
		}

		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if notification.UserID != userID {
		return nil, types.ErrNotRecipient
	}

	return &notification, nil
}

// MarkRead marks a notification as read for its recipient. Marking an
// already-read notification again is a no-op that returns the existing row.
func (r *NotificationModel) MarkRead(
	ctx context.Context, notificationID, userID int64,
) (*types.Notification, error) {
	notification, err := r.getOwned(ctx, notificationID, userID)
	if err != nil {
		return nil, err
	}

	if notification.IsRead {
		return notification, nil
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now

	_, err = r.db.NewUpdate().
		Model(notification).
		Column("is_read", "read_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return notification, nil
}

// MarkAllRead marks every unread notification of a user as read and returns
// the number of rows updated.
func (r *NotificationModel) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	res, err := r.db.NewUpdate().
		Model((*types.Notification)(nil)).
		Set("is_read = TRUE").
		Set("read_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("is_read = FALSE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return int(affected), nil
}

// Delete removes a notification for its recipient.
func (r *NotificationModel) Delete(ctx context.Context, notificationID, userID int64) error {
	notification, err := r.getOwned(ctx, notificationID, userID)
	if err != nil {
		return err
	}

	_, err = r.db.NewDelete().
		Model(notification).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

// DeleteByAnswer removes every notification referencing an answer and returns
// the distinct recipients so the caller can refresh their live counters.
func (r *NotificationModel) DeleteByAnswer(
	ctx context.Context, tx bun.IDB, answerID int64,
) ([]int64, error) {
	var recipients []int64

	err := tx.NewDelete().
		Model((*types.Notification)(nil)).
		Where("answer_id = ?", answerID).
		Returning("user_id").
		Scan(ctx, &recipients)
	if err != nil {
		return nil, fmt.Errorf("failed to delete notifications by answer: %w", err)
	}

	return dedupeIDs(recipients), nil
}

// DeleteByQuestion removes every notification referencing a question and
// returns the distinct recipients.
func (r *NotificationModel) DeleteByQuestion(
	ctx context.Context, tx bun.IDB, questionID int64,
) ([]int64, error) {
	var recipients []int64

	err := tx.NewDelete().
		Model((*types.Notification)(nil)).
		Where("question_id = ?", questionID).
		Returning("user_id").
		Scan(ctx, &recipients)
	if err != nil {
		return nil, fmt.Errorf("failed to delete notifications by question: %w", err)
	}

	return dedupeIDs(recipients), nil
}

// dedupeIDs returns ids with duplicates removed, preserving first-seen order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
