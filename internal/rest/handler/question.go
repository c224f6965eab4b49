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

// QuestionHandler handles the question API.
type QuestionHandler struct {
	db       database.Client
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(db database.Client, notifier *notifier.Notifier, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		db:       db,
		notifier: notifier,
		logger:   logger.Named("question_handler"),
	}
}

// Create posts a new question and fans notifications out to active users in
// the background.
func (h *QuestionHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	var body restTypes.CreateQuestionRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Body) == "" {
		http.Error(w, "Title and body are required", http.StatusBadRequest)
		return nil
	}

	question, err := h.db.Service().Question().CreateQuestion(req.Context(), userID, body.Title, body.Body)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.QuestionCreated(context.WithoutCancel(req.Context()), question)

	w.WriteHeader(http.StatusCreated)

	return sonic.ConfigDefault.NewEncoder(w).Encode(question)
}

// Get returns a question by ID.
func (h *QuestionHandler) Get(w http.ResponseWriter, req bunrouter.Request) error {
	questionID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return nil
	}

	question, err := h.db.Model().Question().GetQuestion(req.Context(), questionID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, question)
}

// Delete soft-deletes a question and sweeps notifications referencing it.
func (h *QuestionHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	questionID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return nil
	}

	deletion, err := h.db.Service().Question().DeleteQuestion(req.Context(), questionID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.CountsInvalidated(context.WithoutCancel(req.Context()), deletion.Recipients)

	w.WriteHeader(http.StatusNoContent)

	return nil
}
