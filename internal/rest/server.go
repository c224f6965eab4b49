// Package rest wires the HTTP API: authentication middleware, the JSON
// handlers and the live event stream behind a single router.
package rest

import (
	"net/http"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/handler"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	questionHandler     *handler.QuestionHandler
	answerHandler       *handler.AnswerHandler
	commentHandler      *handler.CommentHandler
	voteHandler         *handler.VoteHandler
	notificationHandler *handler.NotificationHandler
	streamHandler       *handler.StreamHandler
}

// NewServer creates a new REST API server.
func NewServer(db database.Client, hub *events.Hub, notifier *notifier.Notifier, logger *zap.Logger) http.Handler {
	server := &Server{
		questionHandler:     handler.NewQuestionHandler(db, notifier, logger),
		answerHandler:       handler.NewAnswerHandler(db, notifier, logger),
		commentHandler:      handler.NewCommentHandler(db, notifier, logger),
		voteHandler:         handler.NewVoteHandler(db, logger),
		notificationHandler: handler.NewNotificationHandler(db, notifier, logger),
		streamHandler:       handler.NewStreamHandler(hub, notifier, logger),
	}

	authMiddleware := auth.New(logger)

	router := bunrouter.New()

	router.Use(authMiddleware.AsRESTMiddleware).WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/questions", server.questionHandler.Create)
		g.GET("/questions/:id", server.questionHandler.Get)
		g.DELETE("/questions/:id", server.questionHandler.Delete)
		g.POST("/questions/:id/votes", server.voteHandler.VoteQuestion)

		g.POST("/answers", server.answerHandler.Create)
		g.POST("/answers/:id/accept", server.answerHandler.Accept)
		g.DELETE("/answers/:id", server.answerHandler.Delete)
		g.POST("/answers/:id/votes", server.voteHandler.VoteAnswer)

		g.POST("/comments", server.commentHandler.Create)
		g.DELETE("/comments/:id", server.commentHandler.Delete)

		g.GET("/notifications", server.notificationHandler.List)
		g.GET("/notifications/unread-count", server.notificationHandler.UnreadCount)
		g.POST("/notifications/:id/read", server.notificationHandler.MarkRead)
		g.POST("/notifications/read-all", server.notificationHandler.MarkAllRead)
		g.DELETE("/notifications/:id", server.notificationHandler.Delete)

		g.GET("/notifications/stream", server.streamHandler.Stream)
	})

	return router
}
