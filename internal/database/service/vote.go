package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/dbretry"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/models"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VoteService enforces the one-vote-per-(voter, target) state machine and
// triggers reputation ledger updates for each transition.
type VoteService struct {
	db        *bun.DB
	votes     *models.VoteModel
	answers   *models.AnswerModel
	questions *models.QuestionModel
	users     *models.UserModel
	logger    *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(
	db *bun.DB,
	votes *models.VoteModel,
	answers *models.AnswerModel,
	questions *models.QuestionModel,
	users *models.UserModel,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		db:        db,
		votes:     votes,
		answers:   answers,
		questions: questions,
		users:     users,
		logger:    logger.Named("vote_service"),
	}
}

// nextVoteState computes the state machine transition for a vote request:
// no existing vote creates one, the same polarity toggles it off, a different
// polarity flips it in place.
func nextVoteState(existing *enum.VoteType, requested enum.VoteType) (*enum.VoteType, bool) {
	if existing != nil && *existing == requested {
		return nil, true
	}

	return &requested, false
}

// ApplyVote applies a voter's vote to a target inside a short row-scoped
// transaction and reports the transition. The reputation adjustment runs
// after commit and never surfaces a failure to the voter.
func (s *VoteService) ApplyVote(
	ctx context.Context, voterID int64, targetType enum.VoteTarget, targetID int64, voteType enum.VoteType,
) (*types.VoteResult, error) {
	authorID, err := s.targetAuthor(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	if authorID == voterID {
		return nil, types.ErrSelfVote
	}

	var previous, current *enum.VoteType

	var removed bool

	err = dbretry.Transaction(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		// Reset captured state in case the transaction is retried
		previous, current, removed = nil, nil, false

		existing, err := s.votes.GetForUpdate(ctx, tx, voterID, targetType, targetID)
		if err != nil && !errors.Is(err, types.ErrVoteNotFound) {
			return err
		}

		if existing != nil {
			prev := existing.Type
			previous = &prev
		}

		current, removed = nextVoteState(previous, voteType)

		switch {
		case existing == nil:
			vote := &types.Vote{
				VoterID:    voterID,
				TargetType: targetType,
				TargetID:   targetID,
				Type:       voteType,
			}

			return s.votes.Create(ctx, tx, vote)
		case removed:
			return s.votes.Delete(ctx, tx, existing)
		default:
			existing.Type = voteType
			return s.votes.UpdateType(ctx, tx, existing)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply vote: %w", err)
	}

	// Reputation is a best-effort side effect of the committed transition
	if delta := VoteTransitionDelta(targetType, previous, current); delta != 0 {
		go func() {
			ctx := context.WithoutCancel(ctx)

			if err := s.users.AdjustReputation(ctx, authorID, delta); err != nil {
				s.logger.Error("Failed to adjust reputation after vote",
					zap.Int64("authorID", authorID),
					zap.Int("delta", delta),
					zap.Error(err))
			}
		}()
	}

	upvotes, downvotes, err := s.votes.Counts(ctx, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	return &types.VoteResult{
		Current:   current,
		Previous:  previous,
		Removed:   removed,
		Upvotes:   upvotes,
		Downvotes: downvotes,
	}, nil
}

// targetAuthor resolves the author of the vote target, verifying the target
// exists and is not deleted.
func (s *VoteService) targetAuthor(
	ctx context.Context, targetType enum.VoteTarget, targetID int64,
) (int64, error) {
	switch targetType {
	case enum.VoteTargetAnswer:
		answer, err := s.answers.GetAnswer(ctx, targetID)
		if err != nil {
			return 0, err
		}

		return answer.AuthorID, nil
	case enum.VoteTargetQuestion:
		question, err := s.questions.GetQuestion(ctx, targetID)
		if err != nil {
			return 0, err
		}

		return question.AuthorID, nil
	default:
		return 0, types.ErrInvalidVoteTarget
	}
}
