package service

import (
	"context"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/dbretry"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/models"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AnswerService owns the accept-answer transaction and answer lifecycle. The
// accepted flag on answers and the solved status on questions are only ever
// written together here.
type AnswerService struct {
	db            *bun.DB
	answers       *models.AnswerModel
	questions     *models.QuestionModel
	users         *models.UserModel
	notifications *models.NotificationModel
	logger        *zap.Logger
}

// NewAnswer creates a new answer service.
func NewAnswer(
	db *bun.DB,
	answers *models.AnswerModel,
	questions *models.QuestionModel,
	users *models.UserModel,
	notifications *models.NotificationModel,
	logger *zap.Logger,
) *AnswerService {
	return &AnswerService{
		db:            db,
		answers:       answers,
		questions:     questions,
		users:         users,
		notifications: notifications,
		logger:        logger.Named("answer_service"),
	}
}

// CreateAnswer posts a new answer to a question. Returns the answer and its
// parent question so the caller can dispatch notifications.
func (s *AnswerService) CreateAnswer(
	ctx context.Context, questionID, authorID int64, body string,
) (*types.Answer, *types.Question, error) {
	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}

	answer := &types.Answer{
		QuestionID: questionID,
		AuthorID:   authorID,
		Body:       body,
	}

	if err := s.answers.CreateAnswer(ctx, answer); err != nil {
		return nil, nil, err
	}

	return answer, question, nil
}

// reputationChange is one signed adjustment produced by an accept transition.
type reputationChange struct {
	authorID int64
	delta    int
}

// acceptBonusChanges computes the reputation moves for an accept transition.
// Previous must be the accepted answer observed under the question row lock.
// Re-accepting the same answer moves no points, and a swap between two
// answers of the same author carries the bonus over instead of granting a
// second one.
func acceptBonusChanges(previous, accepted *types.Answer) []reputationChange {
	if previous != nil && previous.AuthorID == accepted.AuthorID {
		return nil
	}

	changes := make([]reputationChange, 0, 2)

	if previous != nil {
		changes = append(changes, reputationChange{
			authorID: previous.AuthorID,
			delta:    -AcceptedAnswerPoints,
		})
	}

	return append(changes, reputationChange{
		authorID: accepted.AuthorID,
		delta:    AcceptedAnswerPoints,
	})
}

// AcceptAnswer marks an answer as the accepted solution of its question.
// Un-accepting every other answer, accepting the target and marking the
// question solved commit as one unit under the question row lock, so
// concurrent accepts on the same question serialize and each transition
// observes the true previously-accepted answer. The reputation adjustments
// run after commit and are never rolled back with it. Returns the accepted
// answer and its question.
func (s *AnswerService) AcceptAnswer(
	ctx context.Context, answerID, requesterID int64,
) (*types.Answer, *types.Question, error) {
	answer, err := s.answers.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, nil, err
	}

	question, err := s.questions.GetQuestion(ctx, answer.QuestionID)
	if err != nil {
		return nil, nil, err
	}

	if question.AuthorID != requesterID {
		return nil, nil, types.ErrNotQuestionAuthor
	}

	if answer.AuthorID == requesterID {
		return nil, nil, types.ErrSelfAccept
	}

	var previous *types.Answer

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		// Reset captured state in case the transaction is retried
		previous = nil

		if _, err := s.questions.GetQuestionForUpdate(ctx, tx, question.ID); err != nil {
			return err
		}

		current, err := s.answers.GetAcceptedAnswer(ctx, tx, question.ID)
		if err != nil {
			return err
		}

		previous = current

		if err := s.answers.UnacceptOthers(ctx, tx, question.ID, answer.ID); err != nil {
			return err
		}

		if err := s.answers.Accept(ctx, tx, answer.ID); err != nil {
			return err
		}

		return s.questions.SetSolved(ctx, tx, question.ID, true, enum.QuestionStatusResolved)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to accept answer: %w", err)
	}

	answer.Accepted = true
	question.Solved = true
	question.Status = enum.QuestionStatusResolved

	// Reputation adjustments are best-effort side effects of the commit:
	// the previous author loses the bonus, the new author gains it.
	if changes := acceptBonusChanges(previous, answer); len(changes) > 0 {
		go func() {
			ctx := context.WithoutCancel(ctx)

			for _, change := range changes {
				if err := s.users.AdjustReputation(ctx, change.authorID, change.delta); err != nil {
					s.logger.Error("Failed to adjust reputation after acceptance",
						zap.Int64("authorID", change.authorID),
						zap.Int("delta", change.delta),
						zap.Error(err))
				}
			}
		}()
	}

	return answer, question, nil
}

// AnswerDeletion reports the outcome of deleting an answer.
type AnswerDeletion struct {
	Answer *types.Answer
	// Reopened is true when the deleted answer held the accepted flag and
	// its question was reverted to open.
	Reopened bool
	// Recipients are the users whose notifications referenced the answer,
	// so their live unread counters can be refreshed.
	Recipients []int64
}

// DeleteAnswer soft-deletes an answer. Deleting the accepted answer reopens
// its question in the same transaction, and notifications referencing the
// answer are swept eagerly.
func (s *AnswerService) DeleteAnswer(
	ctx context.Context, answerID, requesterID int64,
) (*AnswerDeletion, error) {
	answer, err := s.answers.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.GetQuestion(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}

	if answer.AuthorID != requesterID && question.AuthorID != requesterID {
		return nil, types.ErrNotAnswerAuthor
	}

	deletion := &AnswerDeletion{Answer: answer}

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		deletion.Reopened = false

		if err := s.answers.SoftDelete(ctx, tx, answer.ID); err != nil {
			return err
		}

		if answer.Accepted {
			if err := s.questions.SetSolved(ctx, tx, question.ID, false, enum.QuestionStatusOpen); err != nil {
				return err
			}

			deletion.Reopened = true
		}

		recipients, err := s.notifications.DeleteByAnswer(ctx, tx, answer.ID)
		if err != nil {
			return err
		}

		deletion.Recipients = recipients

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete answer: %w", err)
	}

	answer.IsDeleted = true

	return deletion, nil
}
