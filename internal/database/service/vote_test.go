package service

import (
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextVoteState(t *testing.T) {
	t.Parallel()

	up := enum.VoteTypeUp
	down := enum.VoteTypeDown

	t.Run("no existing vote creates one", func(t *testing.T) {
		t.Parallel()

		current, removed := nextVoteState(nil, up)
		require.NotNil(t, current)
		assert.Equal(t, up, *current)
		assert.False(t, removed)
	})

	t.Run("same polarity toggles off", func(t *testing.T) {
		t.Parallel()

		current, removed := nextVoteState(&up, up)
		assert.Nil(t, current)
		assert.True(t, removed)

		current, removed = nextVoteState(&down, down)
		assert.Nil(t, current)
		assert.True(t, removed)
	})

	t.Run("different polarity flips in place", func(t *testing.T) {
		t.Parallel()

		current, removed := nextVoteState(&up, down)
		require.NotNil(t, current)
		assert.Equal(t, down, *current)
		assert.False(t, removed)
	})
}
