// Package notifier implements the notification orchestrator. It decides what
// to persist and push when a domain event occurs, and none of its failures
// ever propagate to the action that triggered the event: callers dispatch
// into it fire-and-forget and every error ends at a log line.
package notifier

import (
	"context"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/push"
	"go.uber.org/zap"
)

// Store is the slice of the notification store the orchestrator writes and
// reads. Implemented by models.NotificationModel.
type Store interface {
	Create(ctx context.Context, notification *types.Notification) error
	BulkCreate(ctx context.Context, notifications []*types.Notification) (int, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// UserDirectory resolves the recipients of a fan-out event. Implemented by
// models.UserModel.
type UserDirectory interface {
	ActiveUserIDs(ctx context.Context) ([]int64, error)
}

// CounterCache mirrors unread counts for hot reads. Implemented by
// cache.UnreadCounter.
type CounterCache interface {
	Get(ctx context.Context, userID int64) (int, bool)
	Set(ctx context.Context, userID int64, count int)
	Invalidate(ctx context.Context, userID int64)
}

// UnreadCountPayload is the body of an unread_count stream event.
type UnreadCountPayload struct {
	Count int `json:"count"`
}

// NewNotificationPayload is the body of a new_notification stream event.
type NewNotificationPayload struct {
	Type           string `json:"type"`
	NotificationID int64  `json:"notificationId,omitempty"`
	QuestionID     *int64 `json:"questionId,omitempty"`
	AnswerID       *int64 `json:"answerId,omitempty"`
	CommentID      *int64 `json:"commentId,omitempty"`
}

// NotificationDeletedPayload is the body of a notification_deleted stream
// event.
type NotificationDeletedPayload struct {
	NotificationID int64 `json:"notificationId"`
}

// Notifier composes, persists and pushes notifications for domain events.
type Notifier struct {
	store    Store
	users    UserDirectory
	hub      *events.Hub
	counters CounterCache
	gateway  push.Gateway
	logger   *zap.Logger
}

// New creates a new notifier.
func New(
	store Store,
	users UserDirectory,
	hub *events.Hub,
	counters CounterCache,
	gateway push.Gateway,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		store:    store,
		users:    users,
		hub:      hub,
		counters: counters,
		gateway:  gateway,
		logger:   logger.Named("notifier"),
	}
}

// AnswerCreated notifies the question author that their question received a
// new answer. The answer author never hears about their own answer.
func (n *Notifier) AnswerCreated(ctx context.Context, question *types.Question, answer *types.Answer) {
	if question.AuthorID == answer.AuthorID {
		return
	}

	n.deliver(ctx, &types.Notification{
		UserID:     question.AuthorID,
		ActorID:    &answer.AuthorID,
		Type:       enum.NotificationTypeAnswerAdded,
		Message:    fmt.Sprintf("Your question %q has a new answer", question.Title),
		QuestionID: &question.ID,
		AnswerID:   &answer.ID,
	}, "New answer")
}

// CommentCreated notifies the author of the commented content. Answer is nil
// for comments left directly on the question.
func (n *Notifier) CommentCreated(
	ctx context.Context, question *types.Question, answer *types.Answer, comment *types.Comment,
) {
	recipientID := question.AuthorID
	message := fmt.Sprintf("Your question %q has a new comment", question.Title)

	if answer != nil {
		recipientID = answer.AuthorID
		message = fmt.Sprintf("Your answer to %q has a new comment", question.Title)
	}

	if recipientID == comment.AuthorID {
		return
	}

	n.deliver(ctx, &types.Notification{
		UserID:     recipientID,
		ActorID:    &comment.AuthorID,
		Type:       enum.NotificationTypeCommentAdded,
		Message:    message,
		QuestionID: &question.ID,
		AnswerID:   comment.AnswerID,
		CommentID:  &comment.ID,
	}, "New comment")
}

// AnswerAccepted notifies the answer author that the question author
// accepted their answer.
func (n *Notifier) AnswerAccepted(ctx context.Context, question *types.Question, answer *types.Answer) {
	if question.AuthorID == answer.AuthorID {
		return
	}

	n.deliver(ctx, &types.Notification{
		UserID:     answer.AuthorID,
		ActorID:    &question.AuthorID,
		Type:       enum.NotificationTypeAnswerAccepted,
		Message:    fmt.Sprintf("Your answer to %q was accepted", question.Title),
		QuestionID: &question.ID,
		AnswerID:   &answer.ID,
	}, "Answer accepted")
}

// NotificationRead refreshes a user's live unread counter after a read-state
// mutation (mark-read or mark-all-read).
func (n *Notifier) NotificationRead(ctx context.Context, userID int64) {
	n.counters.Invalidate(ctx, userID)
	n.refreshUnread(ctx, userID)
}

// NotificationDeleted announces the deletion of a notification to the
// recipient's open streams and refreshes their counter.
func (n *Notifier) NotificationDeleted(ctx context.Context, userID, notificationID int64) {
	n.hub.Broadcast(userID, events.EventNotificationDeleted, NotificationDeletedPayload{
		NotificationID: notificationID,
	})
	n.counters.Invalidate(ctx, userID)
	n.refreshUnread(ctx, userID)
}

// CountsInvalidated refreshes the live unread counters of users whose
// notifications were swept by a content deletion cascade.
func (n *Notifier) CountsInvalidated(ctx context.Context, recipients []int64) {
	for _, userID := range recipients {
		n.counters.Invalidate(ctx, userID)

		if n.hub.ConnectionCount(userID) > 0 {
			n.refreshUnread(ctx, userID)
		}
	}
}

// UnreadCount returns a user's unread count, serving from the cache when
// possible and falling back to a database recount.
func (n *Notifier) UnreadCount(ctx context.Context, userID int64) (int, error) {
	if count, ok := n.counters.Get(ctx, userID); ok {
		return count, nil
	}

	count, err := n.store.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	n.counters.Set(ctx, userID, count)

	return count, nil
}

// deliver persists a notification, refreshes the recipient's unread counter,
// pushes the stream events and hands off to the push gateway. Failures are
// logged and swallowed at every step.
func (n *Notifier) deliver(ctx context.Context, notification *types.Notification, title string) {
	if err := n.store.Create(ctx, notification); err != nil {
		n.logger.Error("Failed to persist notification",
			zap.Int64("userID", notification.UserID),
			zap.String("type", notification.Type.String()),
			zap.Error(err))

		return
	}

	n.refreshUnread(ctx, notification.UserID)

	n.hub.Broadcast(notification.UserID, events.EventNewNotification, NewNotificationPayload{
		Type:           notification.Type.String(),
		NotificationID: notification.ID,
		QuestionID:     notification.QuestionID,
		AnswerID:       notification.AnswerID,
		CommentID:      notification.CommentID,
	})

	go func() {
		ctx := context.WithoutCancel(ctx)

		if _, err := n.gateway.Send(ctx, notification.UserID, title, notification.Message, nil); err != nil {
			n.logger.Warn("Push gateway hand-off failed",
				zap.Int64("userID", notification.UserID),
				zap.Error(err))
		}
	}()
}

// refreshUnread re-reads a user's fresh unread count, mirrors it in the
// cache and pushes an unread_count event to their open streams.
func (n *Notifier) refreshUnread(ctx context.Context, userID int64) {
	count, err := n.store.UnreadCount(ctx, userID)
	if err != nil {
		n.logger.Error("Failed to refresh unread count",
			zap.Int64("userID", userID),
			zap.Error(err))

		return
	}

	n.counters.Set(ctx, userID, count)
	n.hub.Broadcast(userID, events.EventUnreadCount, UnreadCountPayload{Count: count})
}
