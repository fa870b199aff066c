package models

import "time"

// ChatRoom binds exactly one (match, host, applicant[, player/team]) tuple.
// Rooms are created lazily and hard-deleted only after both sides have left.
type ChatRoom struct {
	ID                int64     `db:"id" json:"id"`
	MatchID           int64     `db:"match_id" json:"match_id"`
	HostID            int64     `db:"host_id" json:"host_id"`
	ApplicantUserID   int64     `db:"applicant_user_id" json:"applicant_user_id"`
	ApplicantPlayerID *int64    `db:"applicant_player_id" json:"applicant_player_id,omitempty"`
	ApplicantTeamID   *int64    `db:"applicant_team_id" json:"applicant_team_id,omitempty"`
	HostOut           bool      `db:"host_out" json:"host_out"`
	ApplicantOut      bool      `db:"applicant_out" json:"applicant_out"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// RoomKey is the identifying tuple used for lookup-or-create. Team sports key
// on the team id, individual sports on the player id where available.
type RoomKey struct {
	MatchID           int64
	HostID            int64
	ApplicantUserID   int64
	ApplicantPlayerID *int64
	ApplicantTeamID   *int64
}

// HasParticipant reports whether the user is one of the two room members.
func (r ChatRoom) HasParticipant(userID int64) bool {
	return r.HostID == userID || r.ApplicantUserID == userID
}

// Abandoned reports whether both sides have left the room.
func (r ChatRoom) Abandoned() bool {
	return r.HostOut && r.ApplicantOut
}
