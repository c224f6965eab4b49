package types

import (
	"errors"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
)

var (
	ErrVoteNotFound      = errors.New("vote not found")
	ErrSelfVote          = errors.New("cannot vote on own content")
	ErrInvalidVoteType   = errors.New("invalid vote type")
	ErrInvalidVoteTarget = errors.New("invalid vote target")
)

// Vote represents a single user's vote on a piece of content. The composite
// primary key enforces at most one vote per (voter, target) pair.
type Vote struct {
	VoterID    int64           `bun:",pk"      json:"voterId"`
	TargetType enum.VoteTarget `bun:",pk"      json:"targetType"`
	TargetID   int64           `bun:",pk"      json:"targetId"`
	Type       enum.VoteType   `bun:",notnull" json:"type"`
	CreatedAt  time.Time       `bun:",notnull" json:"createdAt"`
	UpdatedAt  time.Time       `bun:",notnull" json:"updatedAt"`
}

// VoteResult reports a vote transition with enough information for the
// reputation ledger to compute the signed delta without re-querying.
type VoteResult struct {
	// Current is nil when the transition removed the vote.
	Current *enum.VoteType `json:"current"`
	// Previous is nil when no vote existed before the transition.
	Previous *enum.VoteType `json:"previous"`
	// Removed is true when the transition was a toggle-off.
	Removed bool `json:"removed"`
	// Upvotes and Downvotes are the target's aggregate counts after the
	// transition.
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
