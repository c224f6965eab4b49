package types

import (
	"errors"
	"time"
)

var (
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrNotAnswerAuthor = errors.New("requester is not the answer author")
	ErrSelfAccept      = errors.New("cannot accept own answer")
)

// Answer represents an answer to a question. At most one answer per question
// holds the accepted flag at any time.
type Answer struct {
	ID         int64     `bun:",pk,autoincrement"      json:"id"`
	QuestionID int64     `bun:",notnull"               json:"questionId"`
	AuthorID   int64     `bun:",notnull"               json:"authorId"`
	Body       string    `bun:",notnull"               json:"body"`
	Accepted   bool      `bun:",notnull,default:false" json:"accepted"`
	IsDeleted  bool      `bun:",notnull,default:false" json:"isDeleted"`
	CreatedAt  time.Time `bun:",notnull"               json:"createdAt"`
	UpdatedAt  time.Time `bun:",notnull"               json:"updatedAt"`
}
