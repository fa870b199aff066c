package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Application is one applicant's bid for a match. For team sports the bid binds
// a team, otherwise a player. At most one application per match can be
// ACCEPTED; accepting one rejects every other pending bid on the same match.
type Application struct {
	ID                int64             `db:"id" json:"id"`
	MatchID           int64             `db:"match_id" json:"match_id"`
	ApplicantUserID   int64             `db:"applicant_user_id" json:"applicant_user_id"`
	ApplicantPlayerID *int64            `db:"applicant_player_id" json:"applicant_player_id,omitempty"`
	ApplicantTeamID   *int64            `db:"applicant_team_id" json:"applicant_team_id,omitempty"`
	WeightClass       *string           `db:"weight_class" json:"weight_class,omitempty"`
	ParticipantCount  *int              `db:"participant_count" json:"participant_count,omitempty"`
	UniformColor      *string           `db:"uniform_color" json:"uniform_color,omitempty"`
	Message           string            `db:"message" json:"message"`
	Status            ApplicationStatus `db:"status" json:"status"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// SubmitApplicationRequest is the payload for applying to a match.
type SubmitApplicationRequest struct {
	ApplicantPlayerID *int64  `json:"applicant_player_id,omitempty"`
	ApplicantTeamID   *int64  `json:"applicant_team_id,omitempty"`
	WeightClass       *string `json:"weight_class,omitempty"`
	ParticipantCount  *int    `json:"participant_count,omitempty"`
	UniformColor      *string `json:"uniform_color,omitempty"`
	Message           string  `json:"message"`
}
