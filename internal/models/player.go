package models

import "time"

// Player is a user's per-sport identity. A user can hold several profiles
// across sports; reference data only, never mutated by the lifecycle engine.
type Player struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	SportType SportType `db:"sport_type" json:"sport_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Team struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SportType SportType `db:"sport_type" json:"sport_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeamRole is a player's role on a team. LEADER grants the authority to apply
// on behalf of the roster.
type TeamRole string

const (
	RoleLeader  TeamRole = "LEADER"
	RoleManager TeamRole = "MANAGER"
	RoleMember  TeamRole = "MEMBER"
	RoleNone    TeamRole = "NONE"
)

type TeamMember struct {
	TeamID   int64    `db:"team_id" json:"team_id"`
	PlayerID int64    `db:"player_id" json:"player_id"`
	Role     TeamRole `db:"role" json:"role"`
}

// TeamMembership pairs a team with the player's role on it.
type TeamMembership struct {
	Team Team     `json:"team"`
	Role TeamRole `json:"role"`
}
