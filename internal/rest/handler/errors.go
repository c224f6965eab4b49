package handler

import (
	"errors"
	"net/http"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"go.uber.org/zap"
)

// writeError maps domain sentinel errors onto HTTP statuses. Unrecognized
// errors are logged and reported as internal errors without leaking details.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, types.ErrQuestionNotFound),
		errors.Is(err, types.ErrAnswerNotFound),
		errors.Is(err, types.ErrCommentNotFound),
		errors.Is(err, types.ErrNotificationNotFound),
		errors.Is(err, types.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, types.ErrSelfVote),
		errors.Is(err, types.ErrSelfAccept),
		errors.Is(err, types.ErrNotQuestionAuthor),
		errors.Is(err, types.ErrNotAnswerAuthor),
		errors.Is(err, types.ErrNotRecipient):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, types.ErrInvalidVoteType),
		errors.Is(err, types.ErrInvalidVoteTarget),
		errors.Is(err, types.ErrMissingRecipient):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("Request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
