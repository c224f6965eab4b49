package service

import (
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
)

// Reputation point values. These are fixed constants of the scoring system;
// the transition delta is always the difference between the value of the new
// state and the value of the previous state, so every transition is exactly
// reversible by the opposite transition.
const (
	// AnswerUpvotePoints is awarded to an answer author per upvote.
	AnswerUpvotePoints = 10
	// QuestionUpvotePoints is awarded to a question author per upvote.
	QuestionUpvotePoints = 5
	// DownvotePoints is applied to the target author per downvote.
	DownvotePoints = -2
	// AcceptedAnswerPoints is awarded to an answer author on acceptance.
	AcceptedAnswerPoints = 15
)

// upvotePoints returns the upvote value for a vote target kind.
func upvotePoints(target enum.VoteTarget) int {
	if target == enum.VoteTargetQuestion {
		return QuestionUpvotePoints
	}

	return AnswerUpvotePoints
}

// voteValue returns the point value of a vote state; a nil state (no vote)
// is worth zero.
func voteValue(target enum.VoteTarget, voteType *enum.VoteType) int {
	if voteType == nil {
		return 0
	}

	if *voteType == enum.VoteTypeDown {
		return DownvotePoints
	}

	return upvotePoints(target)
}

// VoteTransitionDelta computes the signed reputation delta for a vote
// transition. Previous is nil when no vote existed; current is nil when the
// transition removed the vote.
func VoteTransitionDelta(target enum.VoteTarget, previous, current *enum.VoteType) int {
	return voteValue(target, current) - voteValue(target, previous)
}

// ApplyDelta applies a signed delta to a score with the ledger's floor clamp.
// This mirrors the GREATEST(0, reputation + ?) write in
// models.UserModel.AdjustReputation: the clamp happens on every write, so
// points lost to the floor are not banked and a later reverse transition does
// not restore them.
func ApplyDelta(score, delta int) int {
	if next := score + delta; next > 0 {
		return next
	}

	return 0
}
