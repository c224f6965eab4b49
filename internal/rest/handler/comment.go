package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	restTypes "github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CommentHandler handles the comment API.
type CommentHandler struct {
	db       database.Client
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(db database.Client, notifier *notifier.Notifier, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		db:       db,
		notifier: notifier,
		logger:   logger.Named("comment_handler"),
	}
}

// Create posts a comment on a question or one of its answers and notifies
// the content author.
func (h *CommentHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	var body restTypes.CreateCommentRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if strings.TrimSpace(body.Body) == "" {
		http.Error(w, "Comment body is required", http.StatusBadRequest)
		return nil
	}

	comment, question, answer, err := h.db.Service().Comment().CreateComment(
		req.Context(), userID, body.QuestionID, body.AnswerID, body.Body)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.CommentCreated(context.WithoutCancel(req.Context()), question, answer, comment)

	w.WriteHeader(http.StatusCreated)

	return sonic.ConfigDefault.NewEncoder(w).Encode(comment)
}

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	commentID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Comment().DeleteComment(req.Context(), commentID, userID); err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
