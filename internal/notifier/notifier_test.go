package notifier_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types/enum"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	created []*types.Notification
	bulked  [][]*types.Notification
	unread  map[int64]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{unread: make(map[int64]int)}
}

func (s *fakeStore) Create(_ context.Context, notification *types.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	notification.ID = s.nextID
	s.created = append(s.created, notification)
	s.unread[notification.UserID]++

	return nil
}

func (s *fakeStore) BulkCreate(_ context.Context, notifications []*types.Notification) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bulked = append(s.bulked, notifications)
	for _, notification := range notifications {
		s.nextID++
		notification.ID = s.nextID
		s.unread[notification.UserID]++
	}

	return len(notifications), nil
}

func (s *fakeStore) UnreadCount(_ context.Context, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unread[userID], nil
}

type fakeUsers struct {
	ids []int64
}

func (u *fakeUsers) ActiveUserIDs(_ context.Context) ([]int64, error) {
	return u.ids, nil
}

type fakeCounters struct {
	mu     sync.Mutex
	values map[int64]int
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{values: make(map[int64]int)}
}

func (c *fakeCounters) Get(_ context.Context, userID int64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, ok := c.values[userID]

	return count, ok
}

func (c *fakeCounters) Set(_ context.Context, userID int64, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[userID] = count
}

func (c *fakeCounters) Invalidate(_ context.Context, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, userID)
}

type pushedNotification struct {
	userID int64
	title  string
	body   string
}

type fakeGateway struct {
	sends chan pushedNotification
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sends: make(chan pushedNotification, 16)}
}

func (g *fakeGateway) Send(_ context.Context, userID int64, title, body string, _ map[string]string) (int, error) {
	g.sends <- pushedNotification{userID: userID, title: title, body: body}
	return 1, nil
}

type fixture struct {
	notifier *notifier.Notifier
	store    *fakeStore
	users    *fakeUsers
	counters *fakeCounters
	gateway  *fakeGateway
	hub      *events.Hub
}

func setupTest(t *testing.T, activeUsers ...int64) *fixture {
	t.Helper()

	f := &fixture{
		store:    newFakeStore(),
		users:    &fakeUsers{ids: activeUsers},
		counters: newFakeCounters(),
		gateway:  newFakeGateway(),
		hub:      events.NewHub(zap.NewNop()),
	}

	f.notifier = notifier.New(f.store, f.users, f.hub, f.counters, f.gateway, zap.NewNop())

	return f
}

func receiveEvent(t *testing.T, conn *events.Connection) events.Event {
	t.Helper()

	select {
	case event := <-conn.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestAnswerCreated(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	conn := f.hub.Register(1)

	question := &types.Question{ID: 10, AuthorID: 1, Title: "How do slices grow?"}
	answer := &types.Answer{ID: 20, QuestionID: 10, AuthorID: 2}

	f.notifier.AnswerCreated(context.Background(), question, answer)

	require.Len(t, f.store.created, 1)
	stored := f.store.created[0]
	assert.Equal(t, int64(1), stored.UserID)
	assert.Equal(t, enum.NotificationTypeAnswerAdded, stored.Type)
	require.NotNil(t, stored.ActorID)
	assert.Equal(t, int64(2), *stored.ActorID)

	// The counter refresh lands before the notification event so a client
	// acting on new_notification already sees the right badge
	first := receiveEvent(t, conn)
	assert.Equal(t, events.EventUnreadCount, first.Type)
	assert.JSONEq(t, `{"count":1}`, string(first.Data))

	second := receiveEvent(t, conn)
	assert.Equal(t, events.EventNewNotification, second.Type)

	count, ok := f.counters.Get(context.Background(), 1)
	assert.True(t, ok)
	assert.Equal(t, 1, count)

	select {
	case push := <-f.gateway.sends:
		assert.Equal(t, int64(1), push.userID)
		assert.Equal(t, "New answer", push.title)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for push hand-off")
	}
}

func TestAnswerCreatedSelfFilter(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	conn := f.hub.Register(1)

	question := &types.Question{ID: 10, AuthorID: 1, Title: "Same author"}
	answer := &types.Answer{ID: 20, QuestionID: 10, AuthorID: 1}

	f.notifier.AnswerCreated(context.Background(), question, answer)

	assert.Empty(t, f.store.created)

	select {
	case event := <-conn.Events():
		t.Fatalf("unexpected event: %v", event)
	default:
	}
}

func TestCommentCreated(t *testing.T) {
	t.Parallel()

	f := setupTest(t)

	question := &types.Question{ID: 10, AuthorID: 1, Title: "Channels"}

	t.Run("on question notifies question author", func(t *testing.T) {
		comment := &types.Comment{ID: 30, QuestionID: 10, AuthorID: 3}

		f.notifier.CommentCreated(context.Background(), question, nil, comment)

		require.NotEmpty(t, f.store.created)
		stored := f.store.created[len(f.store.created)-1]
		assert.Equal(t, int64(1), stored.UserID)
		assert.Equal(t, enum.NotificationTypeCommentAdded, stored.Type)
	})

	t.Run("on answer notifies answer author", func(t *testing.T) {
		answerID := int64(20)
		answer := &types.Answer{ID: answerID, QuestionID: 10, AuthorID: 2}
		comment := &types.Comment{ID: 31, QuestionID: 10, AnswerID: &answerID, AuthorID: 3}

		f.notifier.CommentCreated(context.Background(), question, answer, comment)

		require.NotEmpty(t, f.store.created)
		stored := f.store.created[len(f.store.created)-1]
		assert.Equal(t, int64(2), stored.UserID)
	})

	t.Run("commenting on own content is silent", func(t *testing.T) {
		before := len(f.store.created)
		comment := &types.Comment{ID: 32, QuestionID: 10, AuthorID: 1}

		f.notifier.CommentCreated(context.Background(), question, nil, comment)

		assert.Len(t, f.store.created, before)
	})
}

func TestAnswerAccepted(t *testing.T) {
	t.Parallel()

	f := setupTest(t)

	question := &types.Question{ID: 10, AuthorID: 1, Title: "Mutexes"}
	answer := &types.Answer{ID: 20, QuestionID: 10, AuthorID: 2, Accepted: true}

	f.notifier.AnswerAccepted(context.Background(), question, answer)

	require.Len(t, f.store.created, 1)
	stored := f.store.created[0]
	assert.Equal(t, int64(2), stored.UserID)
	assert.Equal(t, enum.NotificationTypeAnswerAccepted, stored.Type)
}

func TestNotificationRead(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	conn := f.hub.Register(1)

	// A stale cached value must be replaced by a fresh recount
	f.counters.Set(context.Background(), 1, 99)
	f.store.unread[1] = 2

	f.notifier.NotificationRead(context.Background(), 1)

	count, ok := f.counters.Get(context.Background(), 1)
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	event := receiveEvent(t, conn)
	assert.Equal(t, events.EventUnreadCount, event.Type)
	assert.JSONEq(t, `{"count":2}`, string(event.Data))
}

func TestNotificationDeleted(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	conn := f.hub.Register(1)

	f.notifier.NotificationDeleted(context.Background(), 1, 55)

	deleted := receiveEvent(t, conn)
	assert.Equal(t, events.EventNotificationDeleted, deleted.Type)
	assert.JSONEq(t, `{"notificationId":55}`, string(deleted.Data))

	refreshed := receiveEvent(t, conn)
	assert.Equal(t, events.EventUnreadCount, refreshed.Type)
}

func TestCountsInvalidated(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	conn := f.hub.Register(1)

	f.counters.Set(context.Background(), 1, 5)
	f.counters.Set(context.Background(), 2, 5)
	f.store.unread[1] = 3

	f.notifier.CountsInvalidated(context.Background(), []int64{1, 2})

	// Connected user gets a refreshed counter and a live event
	count, ok := f.counters.Get(context.Background(), 1)
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	event := receiveEvent(t, conn)
	assert.Equal(t, events.EventUnreadCount, event.Type)

	// Disconnected user is only invalidated
	_, ok = f.counters.Get(context.Background(), 2)
	assert.False(t, ok)
}

func TestUnreadCount(t *testing.T) {
	t.Parallel()

	f := setupTest(t)
	f.store.unread[1] = 4

	// Miss recounts from the store and warms the cache
	count, err := f.notifier.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	cached, ok := f.counters.Get(context.Background(), 1)
	assert.True(t, ok)
	assert.Equal(t, 4, cached)

	// Hit serves the cached value even when the store moved on
	f.store.unread[1] = 9

	count, err = f.notifier.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestQuestionCreatedFanOut(t *testing.T) {
	t.Parallel()

	f := setupTest(t, 1, 2, 3, 4)
	connected := f.hub.Register(2)

	question := &types.Question{ID: 10, AuthorID: 1, Title: "Generics"}

	f.notifier.QuestionCreated(context.Background(), question)

	// Everyone but the author is persisted in one bulk write
	require.Len(t, f.store.bulked, 1)
	require.Len(t, f.store.bulked[0], 3)

	recipients := make([]int64, 0, 3)
	for _, notification := range f.store.bulked[0] {
		recipients = append(recipients, notification.UserID)
		assert.Equal(t, enum.NotificationTypeQuestionAdded, notification.Type)
	}

	assert.ElementsMatch(t, []int64{2, 3, 4}, recipients)

	// Only the connected recipient gets live events
	first := receiveEvent(t, connected)
	assert.Equal(t, events.EventUnreadCount, first.Type)

	second := receiveEvent(t, connected)
	assert.Equal(t, events.EventNewNotification, second.Type)

	count, ok := f.counters.Get(context.Background(), 2)
	assert.True(t, ok)
	assert.Equal(t, 1, count)

	// Disconnected recipients carry no stale cached counter
	_, ok = f.counters.Get(context.Background(), 3)
	assert.False(t, ok)
}
