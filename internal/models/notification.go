package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type NotificationType string

const (
	NotificationMatchApply    NotificationType = "MATCH_APPLY"
	NotificationChatOpen      NotificationType = "CHAT_OPEN"
	NotificationMatchAccepted NotificationType = "MATCH_ACCEPTED"
	NotificationMatchRejected NotificationType = "MATCH_REJECTED"
	NotificationMatchCancel   NotificationType = "MATCH_CANCEL"
)

// Notification is a fire-and-forget record for a user, created as a side
// effect of lifecycle transitions. Delivery is someone else's job; only the
// record and its read flag live here.
type Notification struct {
	ID          int64            `db:"id" json:"id"`
	ReceiverID  int64            `db:"receiver_id" json:"receiver_id"`
	Type        NotificationType `db:"type" json:"type"`
	Content     string           `db:"content" json:"content"`
	RedirectURL string           `db:"redirect_url" json:"redirect_url"`
	IsRead      bool             `db:"is_read" json:"is_read"`
	Metadata    types.JSONText   `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
