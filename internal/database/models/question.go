package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// QuestionModel handles database operations for questions.
type QuestionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewQuestion creates a new question model.
func NewQuestion(db *bun.DB, logger *zap.Logger) *QuestionModel {
	return &QuestionModel{
		db:     db,
		logger: logger.Named("db_question"),
	}
}

// GetQuestion retrieves a non-deleted question by ID.
func (r *QuestionModel) GetQuestion(ctx context.Context, questionID int64) (*types.Question, error) {
	var question types.Question

	err := r.db.NewSelect().
		Model(&question).
		Where("id = ?", questionID).
		Where("is_deleted = FALSE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrQuestionNotFound
		}

		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return &question, nil
}

// GetQuestionForUpdate loads a non-deleted question, locking its row for the
// duration of the surrounding transaction. The accept-answer transaction uses
// this lock to serialize concurrent accepts on the same question.
func (r *QuestionModel) GetQuestionForUpdate(
	ctx context.Context, tx bun.IDB, questionID int64,
) (*types.Question, error) {
	var question types.Question

	err := tx.NewSelect().
		Model(&question).
		Where("id = ?", questionID).
		Where("is_deleted = FALSE").
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrQuestionNotFound
		}

		return nil, fmt.Errorf("failed to get question for update: %w", err)
	}

	return &question, nil
}

// CreateQuestion inserts a new question row.
func (r *QuestionModel) CreateQuestion(ctx context.Context, question *types.Question) error {
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(question).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

// SetSolved updates a question's solved flag and status together. The caller
// is responsible for running this inside the accept-answer transaction.
func (r *QuestionModel) SetSolved(
	ctx context.Context, tx bun.IDB, questionID int64, solved bool, status enum.QuestionStatus,
) error {
	_, err := tx.NewUpdate().
		Model((*types.Question)(nil)).
		Set("solved = ?", solved).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", questionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update question solved state: %w", err)
	}

	return nil
}

// SoftDelete marks a question as deleted.
func (r *QuestionModel) SoftDelete(ctx context.Context, tx bun.IDB, questionID int64) error {
	res, err := tx.NewUpdate().
		Model((*types.Question)(nil)).
		Set("is_deleted = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", questionID).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrQuestionNotFound
	}

	return nil
}
