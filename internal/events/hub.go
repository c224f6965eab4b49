// Package events implements the in-process connection registry that tracks
// live outbound channels per user and broadcasts events to all of a user's
// open connections.
package events

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event type names emitted on the live stream.
const (
	EventConnected           = "connected"
	EventUnreadCount         = "unread_count"
	EventNewNotification     = "new_notification"
	EventNotificationDeleted = "notification_deleted"
)

// connectionBuffer is the per-connection event buffer. A connection that
// cannot drain this many events is considered gone and pruned.
const connectionBuffer = 32

// Event is a typed message delivered to a live connection.
type Event struct {
	Type string
	Data []byte
}

// Connection is an ephemeral handle for one open push channel of one user.
// It is created by Register and owned by the hub; losing one is a missed
// push, never a correctness incident.
type Connection struct {
	ID     uuid.UUID
	UserID int64

	events chan Event
}

// Events returns the channel the transport drains. It is closed when the
// connection is unregistered or pruned.
func (c *Connection) Events() <-chan Event {
	return c.events
}

// Hub maintains the mapping from user ID to that user's set of open
// connections. It is the only concurrently-mutated in-memory structure in
// the system; all methods are safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	conns  map[int64]map[*Connection]struct{}
	logger *zap.Logger
}

// NewHub creates a new connection hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[int64]map[*Connection]struct{}),
		logger: logger.Named("events_hub"),
	}
}

// Register opens a new connection handle for a user.
func (h *Hub) Register(userID int64) *Connection {
	conn := &Connection{
		ID:     uuid.New(),
		UserID: userID,
		events: make(chan Event, connectionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[userID]
	if !ok {
		set = make(map[*Connection]struct{})
		h.conns[userID] = set
	}

	set[conn] = struct{}{}

	h.logger.Debug("Connection registered",
		zap.Int64("userID", userID),
		zap.String("connectionID", conn.ID.String()),
		zap.Int("connections", len(set)))

	return conn
}

// Unregister removes a connection from its user's set and closes its event
// channel. The user's entry is removed entirely when the set becomes empty.
// Safe to call more than once for the same connection.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(conn)
}

// removeLocked removes and closes a connection. Caller must hold the write
// lock; the channel is only closed if the connection was still registered,
// which makes double-unregister safe.
func (h *Hub) removeLocked(conn *Connection) {
	set, ok := h.conns[conn.UserID]
	if !ok {
		return
	}

	if _, ok := set[conn]; !ok {
		return
	}

	delete(set, conn)
	close(conn.events)

	if len(set) == 0 {
		delete(h.conns, conn.UserID)
	}

	h.logger.Debug("Connection removed",
		zap.Int64("userID", conn.UserID),
		zap.String("connectionID", conn.ID.String()))
}

// Broadcast delivers an event to all of a user's open connections. The
// payload is marshaled once; a connection that cannot accept the event is
// pruned while the remaining connections still receive it. Broadcasting to a
// user with no connections is a silent no-op.
func (h *Hub) Broadcast(userID int64, eventType string, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal event payload",
			zap.String("eventType", eventType),
			zap.Error(err))

		return
	}

	event := Event{Type: eventType, Data: data}

	var stale []*Connection

	h.mu.RLock()

	for conn := range h.conns[userID] {
		select {
		case conn.events <- event:
		default:
			// Buffer full, client is gone or too slow
			stale = append(stale, conn)
		}
	}

	h.mu.RUnlock()

	if len(stale) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range stale {
		h.logger.Warn("Pruning unresponsive connection",
			zap.Int64("userID", conn.UserID),
			zap.String("connectionID", conn.ID.String()),
			zap.String("eventType", eventType))
		h.removeLocked(conn)
	}
}

// ConnectionCount returns the number of open connections for a user.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns[userID])
}

// Users returns the IDs of all users with at least one open connection.
func (h *Hub) Users() []int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]int64, 0, len(h.conns))
	for userID := range h.conns {
		users = append(users, userID)
	}

	return users
}
