package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
)

const matchColumns = `id, host_user_id, sport_type, home_player_id, home_team_id,
    away_player_id, away_team_id, match_date, location, details, status, created_at, updated_at`

// MatchRepository abstracts match persistence.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int64) (models.Match, error)
	List(ctx context.Context, status models.MatchStatus, sport models.SportType) ([]models.Match, error)
	SoftDelete(ctx context.Context, id int64) (models.Match, error)
}

// MatchRepo is a sqlx implementation of MatchRepository.
type MatchRepo struct {
	db *sqlx.DB
}

// NewMatchRepo constructs a MatchRepo.
func NewMatchRepo(db *sqlx.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create inserts an OPEN match and fills the generated fields.
func (r *MatchRepo) Create(ctx context.Context, match *models.Match) error {
	details := match.Details
	if len(details) == 0 {
		details = []byte(`{}`)
	}
	query := `INSERT INTO matches
            (host_user_id, sport_type, home_player_id, home_team_id, match_date, location, details)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + matchColumns
	return r.db.QueryRowxContext(ctx, query,
		match.HostUserID, match.SportType.Normalized(), match.HomePlayerID, match.HomeTeamID,
		match.MatchDate, match.Location, details).
		StructScan(match)
}

// GetByID fetches a match by id.
func (r *MatchRepo) GetByID(ctx context.Context, id int64) (models.Match, error) {
	var match models.Match
	err := r.db.GetContext(ctx, &match, `SELECT `+matchColumns+` FROM matches WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, apperrors.NotFound("match not found")
	}
	return match, err
}

// List returns matches by status, optionally filtered to one sport.
func (r *MatchRepo) List(ctx context.Context, status models.MatchStatus, sport models.SportType) ([]models.Match, error) {
	var matches []models.Match
	if sport != "" {
		err := r.db.SelectContext(ctx, &matches,
			`SELECT `+matchColumns+` FROM matches WHERE status=$1 AND UPPER(sport_type)=$2 ORDER BY match_date ASC`,
			status, string(sport.Normalized()))
		return matches, err
	}
	err := r.db.SelectContext(ctx, &matches,
		`SELECT `+matchColumns+` FROM matches WHERE status=$1 ORDER BY match_date ASC`, status)
	return matches, err
}

// SoftDelete flips the status to DELETED. Matches are never hard-deleted so
// chat history stays queryable. The update is conditional: a match that is
// already DELETED reports an invalid state instead of silently re-applying.
func (r *MatchRepo) SoftDelete(ctx context.Context, id int64) (models.Match, error) {
	var match models.Match
	err := r.db.QueryRowxContext(ctx,
		`UPDATE matches SET status=$2, updated_at=NOW() WHERE id=$1 AND status <> $2 RETURNING `+matchColumns,
		id, models.MatchDeleted).
		StructScan(&match)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, apperrors.InvalidState("match is already deleted")
	}
	return match, err
}
