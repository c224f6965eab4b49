package database

import (
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	vote         *service.VoteService
	answer       *service.AnswerService
	question     *service.QuestionService
	comment      *service.CommentService
	notification *service.NotificationService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	userModel := repository.User()
	questionModel := repository.Question()
	answerModel := repository.Answer()
	commentModel := repository.Comment()
	voteModel := repository.Vote()
	notificationModel := repository.Notification()

	return &Service{
		vote:         service.NewVote(db, voteModel, answerModel, questionModel, userModel, logger),
		answer:       service.NewAnswer(db, answerModel, questionModel, userModel, notificationModel, logger),
		question:     service.NewQuestion(db, questionModel, notificationModel, logger),
		comment:      service.NewComment(commentModel, questionModel, answerModel, logger),
		notification: service.NewNotification(notificationModel, logger),
	}
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Answer returns the answer service.
func (s *Service) Answer() *service.AnswerService {
	return s.answer
}

// Question returns the question service.
func (s *Service) Question() *service.QuestionService {
	return s.question
}

// Comment returns the comment service.
func (s *Service) Comment() *service.CommentService {
	return s.comment
}

// Notification returns the notification service.
func (s *Service) Notification() *service.NotificationService {
	return s.notification
}
