package service

import (
	"context"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/models"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"go.uber.org/zap"
)

// CommentService handles comment lifecycle.
type CommentService struct {
	comments  *models.CommentModel
	questions *models.QuestionModel
	answers   *models.AnswerModel
	logger    *zap.Logger
}

// NewComment creates a new comment service.
func NewComment(
	comments *models.CommentModel,
	questions *models.QuestionModel,
	answers *models.AnswerModel,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		questions: questions,
		answers:   answers,
		logger:    logger.Named("comment_service"),
	}
}

// CreateComment posts a comment on a question or on one of its answers.
// Returns the comment together with the resolved question and answer so the
// caller can dispatch notifications to the right author.
func (s *CommentService) CreateComment(
	ctx context.Context, authorID, questionID int64, answerID *int64, body string,
) (*types.Comment, *types.Question, *types.Answer, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, nil, nil, err
	}

	var answer *types.Answer

	if answerID != nil {
		answer, err = s.answers.GetAnswer(ctx, *answerID)
		if err != nil {
			return nil, nil, nil, err
		}

		if answer.QuestionID != question.ID {
			return nil, nil, nil, types.ErrAnswerNotFound
		}
	}

	comment := &types.Comment{
		QuestionID: questionID,
		AnswerID:   answerID,
		AuthorID:   authorID,
		Body:       body,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, nil, nil, err
	}

	return comment, question, answer, nil
}

// DeleteComment removes the author's own comment.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, authorID int64) error {
	return s.comments.SoftDelete(ctx, commentID, authorID)
}
