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

// MatchHandler manages match board endpoints.
type MatchHandler struct {
	matches    repositories.MatchRepository
	roster     repositories.RosterRepository
	lifecycle  services.Lifecycle
	candidates services.CandidateResolver
	audit      *telemetry.AuditEmitter
}

// NewMatchHandler builds a MatchHandler. audit may be nil.
func NewMatchHandler(
	matches repositories.MatchRepository,
	roster repositories.RosterRepository,
	lifecycle services.Lifecycle,
	candidates services.CandidateResolver,
	audit *telemetry.AuditEmitter,
) *MatchHandler {
	return &MatchHandler{
		matches:    matches,
		roster:     roster,
		lifecycle:  lifecycle,
		candidates: candidates,
		audit:      audit,
	}
}

// CreateMatch posts an OPEN match for the caller's player or team.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := authedUserID(c)
	if err := h.authorizeHomeSlot(c, userID, req); err != nil {
		respondError(c, err)
		return
	}

	match := models.Match{
		HostUserID:   userID,
		SportType:    req.SportType.Normalized(),
		HomePlayerID: req.HomePlayerID,
		HomeTeamID:   req.HomeTeamID,
		MatchDate:    req.MatchDate,
		Location:     req.Location,
		Details:      req.Details,
	}
	if err := h.matches.Create(c.Request.Context(), &match); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "match created", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, match)
}

// authorizeHomeSlot checks the caller may field the home player or team.
func (h *MatchHandler) authorizeHomeSlot(c *gin.Context, userID int64, req models.CreateMatchRequest) error {
	if req.SportType.IsTeamSport() {
		if req.HomeTeamID == nil {
			return apperrors.InvalidState("team sport matches must name a home team")
		}
		role, err := h.roster.RoleOf(c.Request.Context(), userID, *req.HomeTeamID)
		if err != nil {
			return err
		}
		if role != models.RoleLeader {
			return apperrors.NotAuthorized("only the team captain can post a match for a team")
		}
		return nil
	}

	if req.HomePlayerID == nil {
		return apperrors.InvalidState("matches must name a home player")
	}
	player, err := h.roster.GetPlayer(c.Request.Context(), *req.HomePlayerID)
	if err != nil {
		return err
	}
	if player.UserID == userID {
		return nil
	}
	leads, err := h.roster.IsRosterLeaderFor(c.Request.Context(), userID, player.ID)
	if err != nil {
		return err
	}
	if !leads {
		return apperrors.NotAuthorized("player does not belong to the caller")
	}
	return nil
}

// ListMatches returns matches on the board, filtered by status and sport.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	status := models.MatchStatus(c.DefaultQuery("status", string(models.MatchOpen)))
	sport := models.SportType(c.Query("sport_type"))

	matches, err := h.matches.List(c.Request.Context(), status, sport)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// GetMatch returns one match.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}
	match, err := h.matches.GetByID(c.Request.Context(), matchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// CancelMatch soft-deletes the caller's own match.
func (h *MatchHandler) CancelMatch(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}
	match, err := h.lifecycle.CancelMatch(c.Request.Context(), matchID, authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.audit.Emit(c.Request.Context(), "INFO", "match cancelled", requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, match)
}

// Candidates returns the caller's selectable players or teams for a match.
func (h *MatchHandler) Candidates(c *gin.Context) {
	matchID, ok := pathID(c, "match_id")
	if !ok {
		return
	}
	candidates, err := h.candidates.Candidates(c.Request.Context(), matchID, authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
