package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
)

const chatRoomColumns = `id, match_id, host_id, applicant_user_id, applicant_player_id,
    applicant_team_id, host_out, applicant_out, created_at`

// ChatRoomRepository abstracts chat room persistence.
type ChatRoomRepository interface {
	ResolveOrCreate(ctx context.Context, key models.RoomKey) (models.ChatRoom, bool, error)
	Find(ctx context.Context, key models.RoomKey) (models.ChatRoom, error)
	GetByID(ctx context.Context, id int64) (models.ChatRoom, error)
	ListForUser(ctx context.Context, userID int64) ([]models.ChatRoom, error)
	MarkOut(ctx context.Context, roomID int64, host bool) (models.ChatRoom, error)
	Delete(ctx context.Context, roomID int64) error
}

// ChatRoomRepo is a sqlx implementation of ChatRoomRepository.
type ChatRoomRepo struct {
	db *sqlx.DB
}

// NewChatRoomRepo constructs a ChatRoomRepo.
func NewChatRoomRepo(db *sqlx.DB) *ChatRoomRepo {
	return &ChatRoomRepo{db: db}
}

// ResolveOrCreate returns the room for the identifying tuple, creating it if
// absent. The unique index on the tuple serializes concurrent callers: the
// loser's insert hits the conflict, falls through to the read and gets the
// winner's row. Returns whether this call created the room.
func (r *ChatRoomRepo) ResolveOrCreate(ctx context.Context, key models.RoomKey) (models.ChatRoom, bool, error) {
	var room models.ChatRoom
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO chat_rooms (match_id, host_id, applicant_user_id, applicant_player_id, applicant_team_id)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT DO NOTHING
            RETURNING `+chatRoomColumns,
		key.MatchID, key.HostID, key.ApplicantUserID, key.ApplicantPlayerID, key.ApplicantTeamID).
		StructScan(&room)
	if err == nil {
		return room, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, false, err
	}

	room, err = r.Find(ctx, key)
	return room, false, err
}

// Find looks a room up by its identifying tuple without creating it.
func (r *ChatRoomRepo) Find(ctx context.Context, key models.RoomKey) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.GetContext(ctx, &room,
		`SELECT `+chatRoomColumns+` FROM chat_rooms
            WHERE match_id=$1 AND host_id=$2 AND applicant_user_id=$3
              AND COALESCE(applicant_player_id, 0)=COALESCE($4, 0)
              AND COALESCE(applicant_team_id, 0)=COALESCE($5, 0)`,
		key.MatchID, key.HostID, key.ApplicantUserID, key.ApplicantPlayerID, key.ApplicantTeamID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, apperrors.NotFound("chat room not found")
	}
	return room, err
}

// GetByID fetches a room by id.
func (r *ChatRoomRepo) GetByID(ctx context.Context, id int64) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.GetContext(ctx, &room, `SELECT `+chatRoomColumns+` FROM chat_rooms WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, apperrors.NotFound("chat room not found")
	}
	return room, err
}

// ListForUser returns the rooms the user participates in and has not left.
func (r *ChatRoomRepo) ListForUser(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT `+chatRoomColumns+` FROM chat_rooms
            WHERE (host_id=$1 AND NOT host_out) OR (applicant_user_id=$1 AND NOT applicant_out)
            ORDER BY created_at DESC`, userID)
	return rooms, err
}

// MarkOut sets the leaving side's flag. Setting an already-true flag is a
// no-op by construction, which is what makes concurrent leaves from the same
// side idempotent.
func (r *ChatRoomRepo) MarkOut(ctx context.Context, roomID int64, host bool) (models.ChatRoom, error) {
	column := "applicant_out"
	if host {
		column = "host_out"
	}
	var room models.ChatRoom
	err := r.db.QueryRowxContext(ctx,
		`UPDATE chat_rooms SET `+column+`=TRUE WHERE id=$1 RETURNING `+chatRoomColumns, roomID).
		StructScan(&room)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, apperrors.NotFound("chat room not found")
	}
	return room, err
}

// Delete hard-deletes a room; its messages cascade away. The only place chat
// data is actually destroyed, gated on both sides having left.
func (r *ChatRoomRepo) Delete(ctx context.Context, roomID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id=$1`, roomID)
	return err
}
