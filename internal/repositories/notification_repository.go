package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
)

const notificationColumns = `id, receiver_id, type, content, redirect_url, is_read, metadata, created_at`

// NotificationRepository abstracts notification record persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForReceiver(ctx context.Context, receiverID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, receiverID int64) error
}

// NotificationRepo is a sqlx implementation of NotificationRepository.
type NotificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create inserts a notification record.
func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	metadata := n.Metadata
	if len(metadata) == 0 {
		metadata = []byte(`{}`)
	}
	return r.db.QueryRowxContext(ctx,
		`INSERT INTO notifications (receiver_id, type, content, redirect_url, metadata)
            VALUES ($1, $2, $3, $4, $5) RETURNING `+notificationColumns,
		n.ReceiverID, n.Type, n.Content, n.RedirectURL, metadata).
		StructScan(n)
}

// ListForReceiver returns the user's notifications, newest first.
func (r *NotificationRepo) ListForReceiver(ctx context.Context, receiverID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT `+notificationColumns+` FROM notifications WHERE receiver_id=$1 ORDER BY created_at DESC, id DESC`,
		receiverID)
	return notifications, err
}

// MarkRead flips the read flag for the receiver's own notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, receiverID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1 AND receiver_id=$2`, id, receiverID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}
