// internal/interfaces/http/handlers/notifications.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
)

// NotificationHandler handles the notification feed endpoints
type NotificationHandler struct {
	notifications *notification.Service
	log           *logrus.Entry
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(notifications *notification.Service, log *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		log:           log.WithField("component", "notification_handler"),
	}
}

// List handles GET /notifications, serving the cached feed
func (h *NotificationHandler) List(c *gin.Context) {
	respondData(c, "notifications retrieved", gin.H{
		"notifications": h.notifications.Notifications(),
		"unread":        h.notifications.Unread(),
	})
}

// MarkRead handles PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "notification marked read", gin.H{"unread": h.notifications.Unread()})
}

// MarkAllRead handles PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "all notifications marked read", gin.H{"unread": h.notifications.Unread()})
}
