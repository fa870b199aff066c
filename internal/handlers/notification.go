package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup-service/internal/models"
	"matchup-service/internal/repositories"
)

// NotificationHandler manages notification record endpoints.
type NotificationHandler struct {
	notifs repositories.NotificationRepository
}

// NewNotificationHandler builds a NotificationHandler.
func NewNotificationHandler(notifs repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifs.ListForReceiver(c.Request.Context(), authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flips the read flag on the caller's own notification.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "notification_id")
	if !ok {
		return
	}
	if err := h.notifs.MarkRead(c.Request.Context(), id, authedUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
