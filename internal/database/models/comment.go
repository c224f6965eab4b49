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

// CommentModel handles database operations for comments.
type CommentModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewComment creates a new comment model.
func NewComment(db *bun.DB, logger *zap.Logger) *CommentModel {
	return &CommentModel{
		db:     db,
		logger: logger.Named("db_comment"),
	}
}

// GetComment retrieves a non-deleted comment by ID.
func (r *CommentModel) GetComment(ctx context.Context, commentID int64) (*types.Comment, error) {
	var comment types.Comment

	err := r.db.NewSelect().
		Model(&comment).
		Where("id = ?", commentID).
		Where("is_deleted = FALSE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrCommentNotFound
		}

		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// CreateComment inserts a new comment row.
func (r *CommentModel) CreateComment(ctx context.Context, comment *types.Comment) error {
	comment.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(comment).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// SoftDelete marks a comment as deleted. Only the comment author may delete it.
func (r *CommentModel) SoftDelete(ctx context.Context, commentID, authorID int64) error {
	res, err := r.db.NewUpdate().
		Model((*types.Comment)(nil)).
		Set("is_deleted = TRUE").
		Where("id = ?", commentID).
		Where("author_id = ?", authorID).
		Where("is_deleted = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrCommentNotFound
	}

	return nil
}
