package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/dbretry"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/models"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// QuestionService handles question lifecycle.
type QuestionService struct {
	db            *bun.DB
	questions     *models.QuestionModel
	notifications *models.NotificationModel
	logger        *zap.Logger
}

// NewQuestion creates a new question service.
func NewQuestion(
	db *bun.DB,
	questions *models.QuestionModel,
	notifications *models.NotificationModel,
	logger *zap.Logger,
) *QuestionService {
	return &QuestionService{
		db:            db,
		questions:     questions,
		notifications: notifications,
		logger:        logger.Named("question_service"),
	}
}

// CreateQuestion posts a new question.
func (s *QuestionService) CreateQuestion(
	ctx context.Context, authorID int64, title, body string,
) (*types.Question, error) {
	question := &types.Question{
		AuthorID: authorID,
		Title:    title,
		Slug:     slugify(title),
		Body:     body,
	}

	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

// QuestionDeletion reports the outcome of deleting a question.
type QuestionDeletion struct {
	Question *types.Question
	// Recipients are the users whose notifications referenced the question.
	Recipients []int64
}

// DeleteQuestion soft-deletes a question and eagerly sweeps notifications
// referencing it. Restricted to the question author.
func (s *QuestionService) DeleteQuestion(
	ctx context.Context, questionID, requesterID int64,
) (*QuestionDeletion, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if question.AuthorID != requesterID {
		return nil, types.ErrNotQuestionAuthor
	}

	deletion := &QuestionDeletion{Question: question}

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		if err := s.questions.SoftDelete(ctx, tx, question.ID); err != nil {
			return err
		}

		recipients, err := s.notifications.DeleteByQuestion(ctx, tx, question.ID)
		if err != nil {
			return err
		}

		deletion.Recipients = recipients

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete question: %w", err)
	}

	question.IsDeleted = true

	return deletion, nil
}

// slugify converts a title into a URL-safe slug.
func slugify(title string) string {
	var b strings.Builder

	lastDash := true

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)

			lastDash = false
		case !lastDash:
			b.WriteByte('-')

			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
