package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for users, including the reputation
// ledger. Reputation is adjusted only through signed deltas and is clamped at
// zero on every write; the clamp is a silent normalization, not an error.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// GetUser retrieves a user by ID.
func (r *UserModel) GetUser(ctx context.Context, userID int64) (*types.User, error) {
	var user types.User

	err := r.db.NewSelect().
		Model(&user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user row.
func (r *UserModel) CreateUser(ctx context.Context, user *types.User) error {
	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// AdjustReputation applies a signed point delta to a user's reputation in a
// single atomic update, clamping the result at zero. A zero delta or an
// absent user is a no-op.
func (r *UserModel) AdjustReputation(ctx context.Context, userID int64, points int) error {
	if points == 0 {
		return nil
	}

	res, err := r.db.NewUpdate().
		Model((*types.User)(nil)).
		Set("reputation = GREATEST(0, reputation + ?)", points).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust reputation: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		r.logger.Debug("Reputation adjustment skipped for absent user",
			zap.Int64("userID", userID),
			zap.Int("points", points))
	}

	return nil
}

// ActiveUserIDs returns the IDs of all active users, used for new-question
// notification fan-out.
func (r *UserModel) ActiveUserIDs(ctx context.Context) ([]int64, error) {
	var userIDs []int64

	err := r.db.NewSelect().
		Model((*types.User)(nil)).
		Column("id").
		Where("is_active = TRUE").
		Scan(ctx, &userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get active user IDs: %w", err)
	}

	return userIDs, nil
}
