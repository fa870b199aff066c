package models

import "strconv"

// Candidate selectability reasons surfaced to the UI instead of dropping the
// entry, so "already applied" and "organizer" badges can be rendered.
const (
	CandidateReasonAlreadyApplied = "already_applied"
	CandidateReasonOrganizer      = "organizer"
)

// Candidate is a player (or player-on-team, for team sports) the user may
// submit as an application. Advisory output: the lifecycle engine re-validates
// authority on submission.
type Candidate struct {
	PlayerID    int64  `json:"player_id"`
	TeamID      *int64 `json:"team_id,omitempty"`
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name,omitempty"`
	Selectable  bool   `json:"selectable"`
	Reason      string `json:"reason,omitempty"`
}

// Key identifies a candidate; team sport candidates are keyed per (player,
// team) membership since the application binds a specific team.
func (c Candidate) Key() string {
	key := "p" + strconv.FormatInt(c.PlayerID, 10)
	if c.TeamID != nil {
		key += ":t" + strconv.FormatInt(*c.TeamID, 10)
	}
	return key
}
