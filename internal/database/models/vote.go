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

// VoteModel handles database operations for votes. Write methods accept a
// bun.IDB so the vote service can run them inside its transaction.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger.Named("db_vote"),
	}
}

// GetForUpdate loads the voter's vote on a target, locking the row for the
// duration of the surrounding transaction. Returns ErrVoteNotFound when no
// vote exists.
func (r *VoteModel) GetForUpdate(
	ctx context.Context, tx bun.IDB, voterID int64, targetType enum.VoteTarget, targetID int64,
) (*types.Vote, error) {
	var vote types.Vote

	err := tx.NewSelect().
		Model(&vote).
		Where("voter_id = ?", voterID).
		Where("target_type = ?", targetType).
		Where("target_id = ?", targetID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrVoteNotFound
		}

		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// Create inserts a new vote row. FOR UPDATE cannot lock a row that does not
// exist yet, so two simultaneous first votes by the same voter can both reach
// the insert; the conflict clause turns the loser into an update of the
// winner's row instead of a unique violation.
func (r *VoteModel) Create(ctx context.Context, tx bun.IDB, vote *types.Vote) error {
	now := time.Now()
	vote.CreatedAt = now
	vote.UpdatedAt = now

	_, err := tx.NewInsert().
		Model(vote).
		On("CONFLICT (voter_id, target_type, target_id) DO UPDATE").
		Set("type = EXCLUDED.type").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}

	return nil
}

// UpdateType flips the polarity of an existing vote in place.
func (r *VoteModel) UpdateType(ctx context.Context, tx bun.IDB, vote *types.Vote) error {
	vote.UpdatedAt = time.Now()

	_, err := tx.NewUpdate().
		Model(vote).
		Column("type", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}

	return nil
}

// Delete removes a vote row (toggle-off).
func (r *VoteModel) Delete(ctx context.Context, tx bun.IDB, vote *types.Vote) error {
	_, err := tx.NewDelete().
		Model(vote).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	return nil
}

// Counts returns the target's aggregate upvote and downvote counts.
func (r *VoteModel) Counts(
	ctx context.Context, targetType enum.VoteTarget, targetID int64,
) (int, int, error) {
	var counts struct {
		Upvotes   int `bun:"upvotes"`
		Downvotes int `bun:"downvotes"`
	}

	err := r.db.NewSelect().
		Model((*types.Vote)(nil)).
		ColumnExpr("COUNT(*) FILTER (WHERE type = ?) AS upvotes", enum.VoteTypeUp).
		ColumnExpr("COUNT(*) FILTER (WHERE type = ?) AS downvotes", enum.VoteTypeDown).
		Where("target_type = ?", targetType).
		Where("target_id = ?", targetID).
		Scan(ctx, &counts)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return counts.Upvotes, counts.Downvotes, nil
}
