package service_test

import (
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/service"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func vote(t enum.VoteType) *enum.VoteType {
	return &t
}

func TestVoteTransitionDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   enum.VoteTarget
		previous *enum.VoteType
		current  *enum.VoteType
		want     int
	}{
		{
			name:    "new upvote on answer",
			target:  enum.VoteTargetAnswer,
			current: vote(enum.VoteTypeUp),
			want:    10,
		},
		{
			name:    "new upvote on question",
			target:  enum.VoteTargetQuestion,
			current: vote(enum.VoteTypeUp),
			want:    5,
		},
		{
			name:    "new downvote on answer",
			target:  enum.VoteTargetAnswer,
			current: vote(enum.VoteTypeDown),
			want:    -2,
		},
		{
			name:    "new downvote on question",
			target:  enum.VoteTargetQuestion,
			current: vote(enum.VoteTypeDown),
			want:    -2,
		},
		{
			name:     "retract upvote on answer",
			target:   enum.VoteTargetAnswer,
			previous: vote(enum.VoteTypeUp),
			want:     -10,
		},
		{
			name:     "retract downvote on answer",
			target:   enum.VoteTargetAnswer,
			previous: vote(enum.VoteTypeDown),
			want:     2,
		},
		{
			name:     "flip up to down on answer",
			target:   enum.VoteTargetAnswer,
			previous: vote(enum.VoteTypeUp),
			current:  vote(enum.VoteTypeDown),
			want:     -12,
		},
		{
			name:     "flip down to up on answer",
			target:   enum.VoteTargetAnswer,
			previous: vote(enum.VoteTypeDown),
			current:  vote(enum.VoteTypeUp),
			want:     12,
		},
		{
			name:     "flip up to down on question",
			target:   enum.VoteTargetQuestion,
			previous: vote(enum.VoteTypeUp),
			current:  vote(enum.VoteTypeDown),
			want:     -7,
		},
		{
			name:   "no vote either side",
			target: enum.VoteTargetAnswer,
			want:   0,
		},
		{
			name:     "unchanged state moves nothing",
			target:   enum.VoteTargetAnswer,
			previous: vote(enum.VoteTypeUp),
			current:  vote(enum.VoteTypeUp),
			want:     0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := service.VoteTransitionDelta(tt.target, tt.previous, tt.current)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyDelta(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, service.ApplyDelta(0, 10))
	assert.Equal(t, 8, service.ApplyDelta(10, -2))
	// The floor clamps on every write and never banks the overshoot
	assert.Equal(t, 0, service.ApplyDelta(10, -12))
	assert.Equal(t, 0, service.ApplyDelta(0, -2))
	assert.Equal(t, 0, service.ApplyDelta(0, 0))
}

// Replays the vote sequence where the floor clamp makes the end score depend
// on the order of operations: an author at zero who is upvoted, then
// downvoted, then has the downvote retracted ends at 2, not back at 0,
// because the flip's -12 was clamped. The clamp-on-write outcome is the
// contract; the apparent non-associativity is deliberate.
func TestClampSequenceFlipThenRetract(t *testing.T) {
	t.Parallel()

	target := enum.VoteTargetAnswer
	score := 0

	// Upvote lands: 0 + 10
	score = service.ApplyDelta(score, service.VoteTransitionDelta(target, nil, vote(enum.VoteTypeUp)))
	assert.Equal(t, 10, score)

	// Flip to downvote: 10 - 12, clamped to 0
	score = service.ApplyDelta(score, service.VoteTransitionDelta(target, vote(enum.VoteTypeUp), vote(enum.VoteTypeDown)))
	assert.Equal(t, 0, score)

	// Retract the downvote: 0 + 2
	score = service.ApplyDelta(score, service.VoteTransitionDelta(target, vote(enum.VoteTypeDown), nil))
	assert.Equal(t, 2, score)
}

// Away from the floor, a vote followed by its retraction restores the
// starting score exactly.
func TestClampSequenceToggleOff(t *testing.T) {
	t.Parallel()

	target := enum.VoteTargetAnswer
	score := 0

	score = service.ApplyDelta(score, service.VoteTransitionDelta(target, nil, vote(enum.VoteTypeUp)))
	assert.Equal(t, 10, score)

	score = service.ApplyDelta(score, service.VoteTransitionDelta(target, vote(enum.VoteTypeUp), nil))
	assert.Equal(t, 0, score)
}

// Every transition must be exactly reversible by the opposite transition, so
// any sequence of votes and retractions nets to zero when it ends where it
// started.
func TestVoteTransitionDeltaReversible(t *testing.T) {
	t.Parallel()

	states := []*enum.VoteType{nil, vote(enum.VoteTypeUp), vote(enum.VoteTypeDown)}
	targets := []enum.VoteTarget{enum.VoteTargetAnswer, enum.VoteTargetQuestion}

	for _, target := range targets {
		for _, from := range states {
			for _, to := range states {
				forward := service.VoteTransitionDelta(target, from, to)
				backward := service.VoteTransitionDelta(target, to, from)
				assert.Equal(t, 0, forward+backward)
			}
		}
	}
}
