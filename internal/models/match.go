package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

type MatchStatus string

const (
	MatchOpen      MatchStatus = "OPEN"
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchDeleted   MatchStatus = "DELETED"
)

// Match is a contest posted by a host. The away slot stays empty until exactly
// one application is accepted. Matches are never hard-deleted; cancellation
// flips the status to DELETED so chat history survives.
type Match struct {
	ID           int64          `db:"id" json:"id"`
	HostUserID   int64          `db:"host_user_id" json:"host_user_id"`
	SportType    SportType      `db:"sport_type" json:"sport_type"`
	HomePlayerID *int64         `db:"home_player_id" json:"home_player_id,omitempty"`
	HomeTeamID   *int64         `db:"home_team_id" json:"home_team_id,omitempty"`
	AwayPlayerID *int64         `db:"away_player_id" json:"away_player_id,omitempty"`
	AwayTeamID   *int64         `db:"away_team_id" json:"away_team_id,omitempty"`
	MatchDate    time.Time      `db:"match_date" json:"match_date"`
	Location     string         `db:"location" json:"location"`
	Details      types.JSONText `db:"details" json:"details,omitempty"`
	Status       MatchStatus    `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// CreateMatchRequest is the payload for posting a match. Free-form attributes
// (weight class, rounds, uniform color...) travel in Details.
type CreateMatchRequest struct {
	SportType    SportType      `json:"sport_type" binding:"required"`
	HomePlayerID *int64         `json:"home_player_id,omitempty"`
	HomeTeamID   *int64         `json:"home_team_id,omitempty"`
	MatchDate    time.Time      `json:"match_date" binding:"required"`
	Location     string         `json:"location"`
	Details      types.JSONText `json:"details,omitempty"`
}
