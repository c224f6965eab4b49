package enum

import "fmt"

// NotificationType represents the domain event a notification records.
type NotificationType int

const (
	// NotificationTypeAnswerAdded is sent to a question author when their
	// question receives a new answer.
	NotificationTypeAnswerAdded NotificationType = iota
	// NotificationTypeCommentAdded is sent to the author of the commented
	// question or answer.
	NotificationTypeCommentAdded
	// NotificationTypeAnswerAccepted is sent to an answer author when the
	// question author accepts their answer.
	NotificationTypeAnswerAccepted
	// NotificationTypeQuestionAdded is fanned out to active users when a new
	// question is posted.
	NotificationTypeQuestionAdded
)

// String returns the wire name of the notification type.
func (t NotificationType) String() string {
	switch t {
	case NotificationTypeAnswerAdded:
		return "answer_added"
	case NotificationTypeCommentAdded:
		return "comment_added"
	case NotificationTypeAnswerAccepted:
		return "answer_accepted"
	case NotificationTypeQuestionAdded:
		return "question_added"
	default:
		return fmt.Sprintf("NotificationType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler so JSON responses carry the
// wire name instead of the storage integer.
func (t NotificationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
