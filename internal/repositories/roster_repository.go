package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
)

const playerColumns = `id, user_id, name, sport_type, created_at`
const teamColumns = `id, name, sport_type, created_at`

// RosterRepository is read-only access to players, teams and memberships.
// The lifecycle engine and the candidate resolver both answer "who may act
// for whom" through this one surface instead of re-deriving captaincy ad hoc.
type RosterRepository interface {
	GetPlayer(ctx context.Context, id int64) (models.Player, error)
	GetTeam(ctx context.Context, id int64) (models.Team, error)
	PlayersByUserAndSport(ctx context.Context, userID int64, sport models.SportType) ([]models.Player, error)
	TeamsOfPlayer(ctx context.Context, playerID int64) ([]models.TeamMembership, error)
	Roster(ctx context.Context, teamID int64) ([]models.Player, error)
	RoleOf(ctx context.Context, userID, teamID int64) (models.TeamRole, error)
	IsRosterLeaderFor(ctx context.Context, userID, playerID int64) (bool, error)
}

// RosterRepo is a sqlx implementation of RosterRepository.
type RosterRepo struct {
	db *sqlx.DB
}

// NewRosterRepo constructs a RosterRepo.
func NewRosterRepo(db *sqlx.DB) *RosterRepo {
	return &RosterRepo{db: db}
}

// GetPlayer fetches a player by id.
func (r *RosterRepo) GetPlayer(ctx context.Context, id int64) (models.Player, error) {
	var player models.Player
	err := r.db.GetContext(ctx, &player, `SELECT `+playerColumns+` FROM players WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Player{}, apperrors.NotFound("player not found")
	}
	return player, err
}

// GetTeam fetches a team by id.
func (r *RosterRepo) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	var team models.Team
	err := r.db.GetContext(ctx, &team, `SELECT `+teamColumns+` FROM teams WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Team{}, apperrors.NotFound("team not found")
	}
	return team, err
}

// PlayersByUserAndSport returns the user's profiles for a sport,
// case-insensitively.
func (r *RosterRepo) PlayersByUserAndSport(ctx context.Context, userID int64, sport models.SportType) ([]models.Player, error) {
	var players []models.Player
	err := r.db.SelectContext(ctx, &players,
		`SELECT `+playerColumns+` FROM players WHERE user_id=$1 AND UPPER(sport_type)=$2 ORDER BY id ASC`,
		userID, string(sport.Normalized()))
	return players, err
}

// TeamsOfPlayer returns every team the player belongs to, with their role.
func (r *RosterRepo) TeamsOfPlayer(ctx context.Context, playerID int64) ([]models.TeamMembership, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT t.id, t.name, t.sport_type, t.created_at, tm.role
            FROM team_members tm JOIN teams t ON t.id = tm.team_id
            WHERE tm.player_id=$1 ORDER BY t.id ASC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []models.TeamMembership
	for rows.Next() {
		var m models.TeamMembership
		if err := rows.Scan(&m.Team.ID, &m.Team.Name, &m.Team.SportType, &m.Team.CreatedAt, &m.Role); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// Roster returns every player on the team.
func (r *RosterRepo) Roster(ctx context.Context, teamID int64) ([]models.Player, error) {
	var players []models.Player
	err := r.db.SelectContext(ctx, &players,
		`SELECT p.id, p.user_id, p.name, p.sport_type, p.created_at
            FROM team_members tm JOIN players p ON p.id = tm.player_id
            WHERE tm.team_id=$1 ORDER BY p.id ASC`, teamID)
	return players, err
}

// RoleOf reports the user's role on the team through any of their profiles,
// NONE when they are not a member.
func (r *RosterRepo) RoleOf(ctx context.Context, userID, teamID int64) (models.TeamRole, error) {
	var role models.TeamRole
	err := r.db.GetContext(ctx, &role,
		`SELECT tm.role FROM team_members tm JOIN players p ON p.id = tm.player_id
            WHERE p.user_id=$1 AND tm.team_id=$2 LIMIT 1`, userID, teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoleNone, nil
	}
	return role, err
}

// IsRosterLeaderFor reports whether the user leads a team the player is on,
// i.e. whether the user may submit that player as an application.
func (r *RosterRepo) IsRosterLeaderFor(ctx context.Context, userID, playerID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(
            SELECT 1
            FROM team_members leader
            JOIN players lp ON lp.id = leader.player_id
            JOIN team_members member ON member.team_id = leader.team_id
            WHERE lp.user_id=$1 AND leader.role=$2 AND member.player_id=$3)`,
		userID, models.RoleLeader, playerID)
	return exists, err
}
