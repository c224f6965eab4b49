package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/notifier"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/middleware/auth"
	restTypes "github.com/AliQassab/CYFoverflow-community-sub000/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// defaultPageSize bounds a notification page when the client does not ask
// for a specific limit.
const defaultPageSize = 20

// NotificationHandler handles the notification pull API.
type NotificationHandler struct {
	db       database.Client
	notifier *notifier.Notifier
	logger   *zap.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(
	db database.Client, notifier *notifier.Notifier, logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		db:       db,
		notifier: notifier,
		logger:   logger.Named("notification_handler"),
	}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	params := types.ListNotificationsParams{
		UnreadOnly: req.URL.Query().Get("unread") == "true",
		Limit:      queryInt(req, "limit", defaultPageSize),
		Offset:     queryInt(req, "offset", 0),
	}

	notifications, err := h.db.Service().Notification().ListForUser(req.Context(), userID, params)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.ListNotificationsResponse{Notifications: notifications})
}

// UnreadCount returns the caller's unread notification count, served from
// the counter cache when warm.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	count, err := h.notifier.UnreadCount(req.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.UnreadCountResponse{Count: count})
}

// MarkRead marks one of the caller's notifications as read; idempotent.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	notificationID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return nil
	}

	notification, err := h.db.Service().Notification().MarkRead(req.Context(), notificationID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.NotificationRead(context.WithoutCancel(req.Context()), userID)

	return bunrouter.JSON(w, notification)
}

// MarkAllRead marks all of the caller's notifications as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	updated, err := h.db.Service().Notification().MarkAllRead(req.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.NotificationRead(context.WithoutCancel(req.Context()), userID)

	return bunrouter.JSON(w, restTypes.MarkAllReadResponse{Updated: updated})
}

// Delete removes one of the caller's notifications.
func (h *NotificationHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	userID, _ := auth.UserID(req.Context())

	notificationID, err := pathID(req, "id")
	if err != nil {
		http.Error(w, "Invalid notification ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Service().Notification().Delete(req.Context(), notificationID, userID); err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	go h.notifier.NotificationDeleted(context.WithoutCancel(req.Context()), userID, notificationID)

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// pathID parses a numeric path parameter.
func pathID(req bunrouter.Request, name string) (int64, error) {
	return strconv.ParseInt(req.Param(name), 10, 64)
}

// queryInt parses a numeric query parameter with a fallback.
func queryInt(req bunrouter.Request, name string, fallback int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
