package handler

import (
	"net/http"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	restTypes "github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VoteHandler handles the vote API.
type VoteHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(db database.Client, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		db:     db,
		logger: logger.Named("vote_handler"),
	}
}

// VoteAnswer casts, changes or retracts the caller's vote on an answer.
func (h *VoteHandler) VoteAnswer(w http.ResponseWriter, req bunrouter.Request) error {
	return h.vote(w, req, enum.VoteTargetAnswer)
}

// VoteQuestion casts, changes or retracts the caller's vote on a question.
func (h *VoteHandler) VoteQuestion(w http.ResponseWriter, req bunrouter.Request) error {
	return h.vote(w, req, enum.VoteTargetQuestion)
}

func (h *VoteHandler) vote(
	w http.ResponseWriter, req bunrouter.Request, targetType enum.VoteTarget,
) error {
	userID, _ := auth.UserID(req.Context())

	targetID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid target ID", http.StatusBadRequest)
		return nil
	}

	var body restTypes.VoteRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	voteType, err := enum.VoteTypeString(body.Type)
	if err != nil {
		writeError(w, h.logger, types.ErrInvalidVoteType)
		return nil
	}

	result, err := h.db.Service().Vote().ApplyVote(req.Context(), userID, targetType, targetID, voteType)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	response := restTypes.VoteResponse{
		Upvotes:   result.Upvotes,
		Downvotes: result.Downvotes,
		Removed:   result.Removed,
	}

	if result.Current != nil {
		current := result.Current.String()
		response.UserVote = &current
	}

	return bunrouter.JSON(w, response)
}
