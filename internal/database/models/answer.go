package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AnswerModel handles database operations for answers.
type AnswerModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAnswer creates a new answer model.
func NewAnswer(db *bun.DB, logger *zap.Logger) *AnswerModel {
	return &AnswerModel{
		db:     db,
		logger: logger.Named("db_answer"),
	}
}

// GetAnswer retrieves a non-deleted answer by ID.
func (r *AnswerModel) GetAnswer(ctx context.Context, answerID int64) (*types.Answer, error) {
	var answer types.Answer

	err := r.db.NewSelect().
		Model(&answer).
		Where("id = ?", answerID).
		Where("is_deleted = FALSE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrAnswerNotFound
		}

		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	return &answer, nil
}

// CreateAnswer inserts a new answer row.
func (r *AnswerModel) CreateAnswer(ctx context.Context, answer *types.Answer) error {
	now := time.Now()
	answer.CreatedAt = now
	answer.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(answer).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	return nil
}

// GetAcceptedAnswer returns the question's currently accepted answer, or nil
// when none exists. Runs on the caller's transaction so the read happens under
// the question row lock.
func (r *AnswerModel) GetAcceptedAnswer(
	ctx context.Context, tx bun.IDB, questionID int64,
) (*types.Answer, error) {
	var answer types.Answer

	err := tx.NewSelect().
		Model(&answer).
		Where("question_id = ?", questionID).
		Where("accepted = TRUE").
		Where("is_deleted = FALSE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get accepted answer: %w", err)
	}

	return &answer, nil
}

// UnacceptOthers clears the accepted flag on every other answer of the
// question. Must run inside the accept-answer transaction.
func (r *AnswerModel) UnacceptOthers(
	ctx context.Context, tx bun.IDB, questionID, exceptAnswerID int64,
) error {
	_, err := tx.NewUpdate().
		Model((*types.Answer)(nil)).
		Set("accepted = FALSE").
		Set("updated_at = ?", time.Now()).
		Where("question_id = ?", questionID).
		Where("id != ?", exceptAnswerID).
		Where("accepted = TRUE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unaccept other answers: %w", err)
	}

	return nil
}

// Accept sets the accepted flag on an answer. Must run inside the
// accept-answer transaction.
func (r *AnswerModel) Accept(ctx context.Context, tx bun.IDB, answerID int64) error {
	res, err := tx.NewUpdate().
		Model((*types.Answer)(nil)).
		Set("accepted = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", answerID).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to accept answer: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrAnswerNotFound
	}

	return nil
}

// SoftDelete marks an answer as deleted.
func (r *AnswerModel) SoftDelete(ctx context.Context, tx bun.IDB, answerID int64) error {
	res, err := tx.NewUpdate().
		Model((*types.Answer)(nil)).
		Set("is_deleted = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", answerID).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrAnswerNotFound
	}

	return nil
}
