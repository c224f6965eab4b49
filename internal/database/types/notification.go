package types

import (
	"errors"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("notification belongs to another user")
	ErrMissingRecipient     = errors.New("notification has no recipient")
)

// Notification represents a durable per-user notification row. Notifications
// are created by the orchestrator in response to domain events, never by the
// recipient; the read flag only ever transitions false to true.
type Notification struct {
	ID         int64                 `bun:",pk,autoincrement"      json:"id"`
	UserID     int64                 `bun:",notnull"               json:"userId"`
	ActorID    *int64                `bun:",nullzero"              json:"actorId,omitempty"`
	Type       enum.NotificationType `bun:",notnull"               json:"type"`
	Message    string                `bun:",notnull"               json:"message"`
	QuestionID *int64                `bun:",nullzero"              json:"questionId,omitempty"`
	AnswerID   *int64                `bun:",nullzero"              json:"answerId,omitempty"`
	CommentID  *int64                `bun:",nullzero"              json:"commentId,omitempty"`
	IsRead     bool                  `bun:",notnull,default:false" json:"isRead"`
	ReadAt     *time.Time            `bun:",nullzero"              json:"readAt,omitempty"`
	CreatedAt  time.Time             `bun:",notnull"               json:"createdAt"`
}

// ListNotificationsParams controls pagination and filtering of a user's
// notification list.
type ListNotificationsParams struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
