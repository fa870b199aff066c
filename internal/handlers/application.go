package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
	"matchup-service/internal/repositories"
	"matchup-service/internal/services"
	"matchup-service/internal/telemetry"
)

// ApplicationHandler manages application lifecycle endpoints.
type ApplicationHandler struct {
	matches   repositories.MatchRepository
	apps      repositories.ApplicationRepository
	roster    repositories.RosterRepository
	lifecycle services.Lifecycle
	audit     *telemetry.AuditEmitter
}

// NewApplicationHandler builds an ApplicationHandler. audit may be nil.
func NewApplicationHandler(
	matches repositories.MatchRepository,
	apps repositories.ApplicationRepository,
	roster repositories.RosterRepository,
	lifecycle services.Lifecycle,
	audit *telemetry.AuditEmitter,
) *ApplicationHandler {
	return &ApplicationHandler{
		matches:   matches,
		apps:      apps,
		roster:    roster,
		lifecycle: lifecycle,
		audit:     audit,
	}
}

// Submit creates a PENDING application on a match.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	var req models.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := authedUserID(c)
	in := services.SubmitApplicationInput{
		MatchID:           matchID,
		ApplicantUserID:   userID,
		ApplicantPlayerID: req.ApplicantPlayerID,
		ApplicantTeamID:   req.ApplicantTeamID,
		WeightClass:       req.WeightClass,
		ParticipantCount:  req.ParticipantCount,
		UniformColor:      req.UniformColor,
		Message:           req.Message,
	}
	if err := h.resolveDisplayNames(c, &in); err != nil {
		respondError(c, err)
		return
	}

	app, err := h.lifecycle.SubmitApplication(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "application submitted", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, app)
}

// resolveDisplayNames fills the presentation fields the engine embeds in host
// notifications. Resolution failures here are not fatal to the application.
func (h *ApplicationHandler) resolveDisplayNames(c *gin.Context, in *services.SubmitApplicationInput) error {
	match, err := h.matches.GetByID(c.Request.Context(), in.MatchID)
	if err != nil {
		return err
	}
	in.SportLabel = string(match.SportType.Normalized())

	if in.ApplicantPlayerID != nil {
		if player, err := h.roster.GetPlayer(c.Request.Context(), *in.ApplicantPlayerID); err == nil {
			in.ApplicantName = player.Name
		}
	}
	if in.ApplicantTeamID != nil {
		if team, err := h.roster.GetTeam(c.Request.Context(), *in.ApplicantTeamID); err == nil {
			in.TeamName = team.Name
		}
	}
	return nil
}

// ListByMatch returns every application on the caller's match.
func (h *ApplicationHandler) ListByMatch(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}

	match, err := h.matches.GetByID(c.Request.Context(), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	if match.HostUserID != authedUserID(c) {
		respondError(c, apperrors.NotAuthorized("only the host can list applications"))
		return
	}

	apps, err := h.apps.ListByMatch(c.Request.Context(), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Accept schedules the match for one application and auto-rejects the rest.
func (h *ApplicationHandler) Accept(c *gin.Context) {
	applicationID, ok := pathID(c, "application_id")
	if !ok {
		return
	}
	outcome, err := h.lifecycle.AcceptApplication(c.Request.Context(), applicationID, authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit.Emit(c.Request.Context(), "INFO", "application accepted", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, outcome)
}

// Reject turns down a single pending application.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	applicationID, ok := pathID(c, "application_id")
	if !ok {
		return
	}
	app, err := h.lifecycle.RejectApplication(c.Request.Context(), applicationID, authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Withdraw deletes the caller's own pending application.
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	applicationID, ok := pathID(c, "application_id")
	if !ok {
		return
	}
	if err := h.lifecycle.CancelApplication(c.Request.Context(), applicationID, authedUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
