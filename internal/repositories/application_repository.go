package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
)

const applicationColumns = `id, match_id, applicant_user_id, applicant_player_id, applicant_team_id,
    weight_class, participant_count, uniform_color, message, status, created_at`

// AcceptResult is everything the accept transaction decided: the scheduled
// match, the winning application and the auto-rejected competitors.
type AcceptResult struct {
	Match    models.Match
	Accepted models.Application
	Rejected []models.Application
}

// ApplicationRepository abstracts application persistence. The accept path is
// a single transaction here because the one-ACCEPTED-per-match invariant lives
// in the store, not in caller discipline.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (models.Application, error)
	ListByMatch(ctx context.Context, matchID int64) ([]models.Application, error)
	ListLiveByMatch(ctx context.Context, matchID int64) ([]models.Application, error)
	AcceptWithAutoReject(ctx context.Context, applicationID int64) (AcceptResult, error)
	Reject(ctx context.Context, applicationID int64) (models.Application, error)
	DeletePending(ctx context.Context, applicationID, applicantUserID int64) error
	FindAccepted(ctx context.Context, matchID int64) (models.Application, error)
}

// ApplicationRepo is a sqlx implementation of ApplicationRepository.
type ApplicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo constructs an ApplicationRepo.
func NewApplicationRepo(db *sqlx.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserts a PENDING application. The partial unique indexes reject a
// second live bid for the same (match, player/team) pair.
func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	query := `INSERT INTO applications
            (match_id, applicant_user_id, applicant_player_id, applicant_team_id,
             weight_class, participant_count, uniform_color, message)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + applicationColumns
	err := r.db.QueryRowxContext(ctx, query,
		app.MatchID, app.ApplicantUserID, app.ApplicantPlayerID, app.ApplicantTeamID,
		app.WeightClass, app.ParticipantCount, app.UniformColor, app.Message).
		StructScan(app)
	if isUniqueViolation(err) {
		return apperrors.DuplicateApplication("a live application already exists for this match")
	}
	return err
}

// GetByID fetches an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (models.Application, error) {
	var app models.Application
	err := r.db.GetContext(ctx, &app, `SELECT `+applicationColumns+` FROM applications WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, apperrors.NotFound("application not found")
	}
	return app, err
}

// ListByMatch returns every application for a match, oldest first.
func (r *ApplicationRepo) ListByMatch(ctx context.Context, matchID int64) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.SelectContext(ctx, &apps,
		`SELECT `+applicationColumns+` FROM applications WHERE match_id=$1 ORDER BY created_at ASC, id ASC`, matchID)
	return apps, err
}

// ListLiveByMatch returns the non-REJECTED applications for a match.
func (r *ApplicationRepo) ListLiveByMatch(ctx context.Context, matchID int64) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.SelectContext(ctx, &apps,
		`SELECT `+applicationColumns+` FROM applications WHERE match_id=$1 AND status <> $2 ORDER BY created_at ASC, id ASC`,
		matchID, models.ApplicationRejected)
	return apps, err
}

// AcceptWithAutoReject flips the application to ACCEPTED, schedules the match,
// fills the away slot and rejects every other PENDING application on the same
// match, all in one transaction. Every update is conditional on the current
// status, so a concurrent accept on a competing application loses cleanly with
// an invalid-state error instead of producing a second winner. Auto-rejection
// excludes the accepted application by id, not merely by status.
func (r *ApplicationRepo) AcceptWithAutoReject(ctx context.Context, applicationID int64) (AcceptResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return AcceptResult{}, err
	}
	defer tx.Rollback()

	var result AcceptResult
	err = tx.QueryRowxContext(ctx,
		`UPDATE applications SET status=$2 WHERE id=$1 AND status=$3 RETURNING `+applicationColumns,
		applicationID, models.ApplicationAccepted, models.ApplicationPending).
		StructScan(&result.Accepted)
	if errors.Is(err, sql.ErrNoRows) {
		return AcceptResult{}, apperrors.InvalidState("application is no longer pending")
	}
	if err != nil {
		return AcceptResult{}, err
	}

	err = tx.QueryRowxContext(ctx,
		`UPDATE matches SET status=$2, away_player_id=$3, away_team_id=$4, updated_at=NOW()
            WHERE id=$1 AND status=$5 RETURNING `+matchColumns,
		result.Accepted.MatchID, models.MatchScheduled,
		result.Accepted.ApplicantPlayerID, result.Accepted.ApplicantTeamID, models.MatchOpen).
		StructScan(&result.Match)
	if errors.Is(err, sql.ErrNoRows) {
		return AcceptResult{}, apperrors.InvalidState("match is no longer open")
	}
	if err != nil {
		return AcceptResult{}, err
	}

	rows, err := tx.QueryxContext(ctx,
		`UPDATE applications SET status=$2 WHERE match_id=$1 AND status=$3 AND id <> $4 RETURNING `+applicationColumns,
		result.Accepted.MatchID, models.ApplicationRejected, models.ApplicationPending, result.Accepted.ID)
	if err != nil {
		return AcceptResult{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var app models.Application
		if err := rows.StructScan(&app); err != nil {
			return AcceptResult{}, err
		}
		result.Rejected = append(result.Rejected, app)
	}
	if err := rows.Err(); err != nil {
		return AcceptResult{}, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return AcceptResult{}, err
	}
	return result, nil
}

// Reject flips a PENDING application to REJECTED.
func (r *ApplicationRepo) Reject(ctx context.Context, applicationID int64) (models.Application, error) {
	var app models.Application
	err := r.db.QueryRowxContext(ctx,
		`UPDATE applications SET status=$2 WHERE id=$1 AND status=$3 RETURNING `+applicationColumns,
		applicationID, models.ApplicationRejected, models.ApplicationPending).
		StructScan(&app)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, apperrors.InvalidState("application is no longer pending")
	}
	return app, err
}

// DeletePending removes a PENDING application owned by the applicant
// (withdrawal). The status and ownership conditions are part of the delete so
// a concurrent accept cannot race the row away from under the owner.
func (r *ApplicationRepo) DeletePending(ctx context.Context, applicationID, applicantUserID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id=$1 AND applicant_user_id=$2 AND status=$3`,
		applicationID, applicantUserID, models.ApplicationPending)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.InvalidState("application is no longer pending")
	}
	return nil
}

// FindAccepted returns the match's accepted application, if any.
func (r *ApplicationRepo) FindAccepted(ctx context.Context, matchID int64) (models.Application, error) {
	var app models.Application
	err := r.db.GetContext(ctx, &app,
		`SELECT `+applicationColumns+` FROM applications WHERE match_id=$1 AND status=$2`,
		matchID, models.ApplicationAccepted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, apperrors.NotFound("no accepted application")
	}
	return app, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
