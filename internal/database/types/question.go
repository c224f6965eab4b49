package types

import (
	"errors"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
)

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrNotQuestionAuthor = errors.New("requester is not the question author")
)

// Question represents a question posted by a user. Solved is true iff some
// non-deleted answer of the question holds the accepted flag; both facts are
// written together by the accept-answer transaction only.
type Question struct {
	ID        int64               `bun:",pk,autoincrement"      json:"id"`
	AuthorID  int64               `bun:",notnull"               json:"authorId"`
	Title     string              `bun:",notnull"               json:"title"`
	Slug      string              `bun:",notnull"               json:"slug"`
	Body      string              `bun:",notnull"               json:"body"`
	Status    enum.QuestionStatus `bun:",notnull,default:0"     json:"status"`
	Solved    bool                `bun:",notnull,default:false" json:"solved"`
	IsDeleted bool                `bun:",notnull,default:false" json:"isDeleted"`
	CreatedAt time.Time           `bun:",notnull"               json:"createdAt"`
	UpdatedAt time.Time           `bun:",notnull"               json:"updatedAt"`
}
