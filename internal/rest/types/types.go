// Package types holds the REST API request and response shapes.
package types

import (
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
)

// VoteRequest casts, changes or retracts a vote.
type VoteRequest struct {
	// Type is "up" or "down". Sending the caller's current polarity again
	// retracts the vote.
	Type string `json:"type"`
}

// VoteResponse reports the target's aggregate counts and the caller's
// resulting vote state.
type VoteResponse struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	// UserVote is nil when the caller no longer has a vote on the target.
	UserVote *string `json:"userVote"`
	Removed  bool    `json:"removed"`
}

// CreateQuestionRequest posts a new question.
type CreateQuestionRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateAnswerRequest posts a new answer.
type CreateAnswerRequest struct {
	QuestionID int64  `json:"questionId"`
	Body       string `json:"body"`
}

// CreateCommentRequest posts a comment on a question or one of its answers.
type CreateCommentRequest struct {
	QuestionID int64  `json:"questionId"`
	AnswerID   *int64 `json:"answerId,omitempty"`
	Body       string `json:"body"`
}

// ListNotificationsResponse wraps a page of the caller's notifications.
type ListNotificationsResponse struct {
	Notifications []*types.Notification `json:"notifications"`
}

// UnreadCountResponse reports the caller's unread notification count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
