package service

import (
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptBonusChanges(t *testing.T) {
	t.Parallel()

	answerB := &types.Answer{ID: 2, AuthorID: 20}
	answerC := &types.Answer{ID: 3, AuthorID: 30}

	t.Run("first accept grants the bonus", func(t *testing.T) {
		t.Parallel()

		changes := acceptBonusChanges(nil, answerB)
		require.Len(t, changes, 1)
		assert.Equal(t, int64(20), changes[0].authorID)
		assert.Equal(t, AcceptedAnswerPoints, changes[0].delta)
	})

	t.Run("re-accepting the same answer moves nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, acceptBonusChanges(answerB, answerB))
	})

	t.Run("swap revokes from the previous author then grants", func(t *testing.T) {
		t.Parallel()

		changes := acceptBonusChanges(answerB, answerC)
		require.Len(t, changes, 2)
		assert.Equal(t, int64(20), changes[0].authorID)
		assert.Equal(t, -AcceptedAnswerPoints, changes[0].delta)
		assert.Equal(t, int64(30), changes[1].authorID)
		assert.Equal(t, AcceptedAnswerPoints, changes[1].delta)
	})

	t.Run("swap between answers of one author carries the bonus over", func(t *testing.T) {
		t.Parallel()

		other := &types.Answer{ID: 4, AuthorID: 20}
		assert.Empty(t, acceptBonusChanges(answerB, other))
	})

	// Serialized accepts must hand the bonus along a chain without ever
	// revoking from the same author twice: each transition's revocation
	// names the author observed holding the bonus at that point, so the
	// net effect is one bonus with the final author.
	t.Run("chained accepts net to one bonus", func(t *testing.T) {
		t.Parallel()

		scores := map[int64]int{10: 0, 20: 0, 30: 0}

		answerA := &types.Answer{ID: 1, AuthorID: 10}

		apply := func(previous, accepted *types.Answer) {
			for _, change := range acceptBonusChanges(previous, accepted) {
				scores[change.authorID] = ApplyDelta(scores[change.authorID], change.delta)
			}
		}

		apply(nil, answerA)
		apply(answerA, answerB)
		apply(answerB, answerC)

		assert.Equal(t, 0, scores[10])
		assert.Equal(t, 0, scores[20])
		assert.Equal(t, AcceptedAnswerPoints, scores[30])
	})
}
