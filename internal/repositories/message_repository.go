package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"matchup-service/internal/models"
)

const messageColumns = `id, chat_room_id, sender_id, kind, content, created_at`

// MessageRepository defines interactions with a room's append-only feed.
type MessageRepository interface {
	Create(ctx context.Context, roomID, senderID int64, kind models.MessageKind, content string) (models.Message, error)
	ListByRoom(ctx context.Context, roomID int64) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create appends a message. Messages are never edited or deleted on their own;
// they only disappear when their room is hard-deleted.
func (r *MessageRepo) Create(ctx context.Context, roomID, senderID int64, kind models.MessageKind, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (chat_room_id, sender_id, kind, content)
            VALUES ($1, $2, $3, $4) RETURNING `+messageColumns,
		roomID, senderID, kind, content).
		StructScan(&msg)
	return msg, err
}

// ListByRoom returns the room's feed in insertion order.
func (r *MessageRepo) ListByRoom(ctx context.Context, roomID int64) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages WHERE chat_room_id=$1 ORDER BY created_at ASC, id ASC`, roomID)
	return msgs, err
}
