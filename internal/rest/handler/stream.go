package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/events"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// keepAliveInterval is how often a comment frame is written to every open
// stream to keep intermediaries from timing out the connection.
const keepAliveInterval = 30 * time.Second

// StreamHandler serves the long-lived one-way event stream.
type StreamHandler struct {
	hub      *events.Hub
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(hub *events.Hub, notifier *notifier.Notifier, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		hub:      hub,
		notifier: notifier,
		logger:   logger.Named("stream_handler"),
	}
}

// Stream opens a server-sent-events channel for the caller. The connection
// persists until the client disconnects or the server shuts down; the
// client's handle is removed from the hub the moment the request context is
// canceled.
func (h *StreamHandler) Stream(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	conn := h.hub.Register(userID)
	defer h.hub.Unregister(conn)

	if err := writeSSE(w, events.EventConnected, []byte("{}")); err != nil {
		return nil
	}

	// A fresh stream must not show stale zero state
	count, err := h.notifier.UnreadCount(req.Context(), userID)
	if err != nil {
		h.logger.Warn("Failed to load initial unread count",
			zap.Int64("userID", userID),
			zap.Error(err))
	} else {
		data, _ := sonic.Marshal(notifier.UnreadCountPayload{Count: count})
		if err := writeSSE(w, events.EventUnreadCount, data); err != nil {
			return nil
		}
	}

	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-req.Context().Done():
			return nil
		case <-keepAlive.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return nil
			}

			flusher.Flush()
		case event, ok := <-conn.Events():
			if !ok {
				// Pruned by the hub
				return nil
			}

			if err := writeSSE(w, event.Type, event.Data); err != nil {
				return nil
			}

			flusher.Flush()
		}
	}
}

// writeSSE writes one server-sent event frame.
func writeSSE(w io.Writer, eventType string, data []byte) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
	return err
}
