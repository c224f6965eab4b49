package types

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment represents a comment on a question or on one of its answers.
// AnswerID is nil for comments left directly on the question.
type Comment struct {
	ID         int64     `bun:",pk,autoincrement"      json:"id"`
	QuestionID int64     `bun:",notnull"               json:"questionId"`
	AnswerID   *int64    `bun:",nullzero"              json:"answerId,omitempty"`
	AuthorID   int64     `bun:",notnull"               json:"authorId"`
	Body       string    `bun:",notnull"               json:"body"`
	IsDeleted  bool      `bun:",notnull,default:false" json:"isDeleted"`
	CreatedAt  time.Time `bun:",notnull"               json:"createdAt"`
}
