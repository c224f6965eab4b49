package notifier

import (
	"context"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// fanOutWorkers bounds the number of concurrent per-recipient refreshes
// during a fan-out.
const fanOutWorkers = 8

// QuestionCreated fans a new-question notification out to every active user
// except the author. Persistence happens in independently committed batches;
// live counter refreshes and pushes only run for recipients with open
// connections.
func (n *Notifier) QuestionCreated(ctx context.Context, question *types.Question) {
	userIDs, err := n.users.ActiveUserIDs(ctx)
	if err != nil {
		n.logger.Error("Failed to resolve fan-out recipients",
			zap.Int64("questionID", question.ID),
			zap.Error(err))

		return
	}

	notifications := make([]*types.Notification, 0, len(userIDs))

	for _, userID := range userIDs {
		if userID == question.AuthorID {
			continue
		}

		notifications = append(notifications, &types.Notification{
			UserID:     userID,
			ActorID:    &question.AuthorID,
			Type:       enum.NotificationTypeQuestionAdded,
			Message:    fmt.Sprintf("New question: %s", question.Title),
			QuestionID: &question.ID,
		})
	}

	inserted, err := n.store.BulkCreate(ctx, notifications)
	if err != nil {
		n.logger.Error("Failed to fan out question notifications",
			zap.Int64("questionID", question.ID),
			zap.Error(err))

		return
	}

	n.logger.Info("Fanned out question notifications",
		zap.Int64("questionID", question.ID),
		zap.Int("recipients", len(notifications)),
		zap.Int("inserted", inserted))

	payload := NewNotificationPayload{
		Type:       enum.NotificationTypeQuestionAdded.String(),
		QuestionID: &question.ID,
	}

	p := pool.New().WithMaxGoroutines(fanOutWorkers)

	for _, notification := range notifications {
		userID := notification.UserID

		n.counters.Invalidate(ctx, userID)

		if n.hub.ConnectionCount(userID) == 0 {
			continue
		}

		p.Go(func() {
			n.refreshUnread(ctx, userID)
			n.hub.Broadcast(userID, events.EventNewNotification, payload)
		})
	}

	p.Wait()
}
