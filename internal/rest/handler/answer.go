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

// AnswerHandler handles the answer API.
type AnswerHandler struct {
	db       database.Client
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewAnswerHandler creates a new answer handler.
func NewAnswerHandler(db database.Client, notifier *notifier.Notifier, logger *zap.Logger) *AnswerHandler {
	return &AnswerHandler{
		db:       db,
		notifier: notifier,
		logger:   logger.Named("answer_handler"),
	}
}

// Create posts a new answer and notifies the question author.
func (h *AnswerHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	var body restTypes.CreateAnswerRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if strings.TrimSpace(body.Body) == "" {
		http.Error(w, "Answer body is required", http.StatusBadRequest)
		return nil
	}

	answer, question, err := h.db.Service().Answer().CreateAnswer(req.Context(), body.QuestionID, userID, body.Body)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.AnswerCreated(context.WithoutCancel(req.Context()), question, answer)

	w.WriteHeader(http.StatusCreated)

	return sonic.ConfigDefault.NewEncoder(w).Encode(answer)
}

// Accept marks an answer as the accepted solution of its question.
func (h *AnswerHandler) Accept(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	answerID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid answer ID", http.StatusBadRequest)
		return nil
	}

	answer, question, err := h.db.Service().Answer().AcceptAnswer(req.Context(), answerID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.AnswerAccepted(context.WithoutCancel(req.Context()), question, answer)

	return bunrouter.JSON(w, answer)
}

// Delete soft-deletes an answer. Notifications referencing the answer are
// swept in the same transaction, so the affected counters are refreshed
// afterwards.
func (h *AnswerHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	answerID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid answer ID", http.StatusBadRequest)
		return nil
	}

	deletion, err := h.db.Service().Answer().DeleteAnswer(req.Context(), answerID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.CountsInvalidated(context.WithoutCancel(req.Context()), deletion.Recipients)

	w.WriteHeader(http.StatusNoContent)

	return nil
}
