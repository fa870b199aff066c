package services

import (
	"context"
	"fmt"
	"log"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/models"
	"matchup-service/internal/observability"
	"matchup-service/internal/repositories"
)

// Broadcaster pushes room events to live websocket subscribers.
type Broadcaster interface {
	BroadcastRoomMessage(roomID int64, msg models.Message)
	BroadcastRoomClosed(roomID int64)
}

// SubmitApplicationInput carries a new bid. Display names and the sport label
// are resolved by the caller; the engine never reads Player/Team tables for
// presentation, only for authority checks.
type SubmitApplicationInput struct {
	MatchID           int64
	ApplicantUserID   int64
	ApplicantPlayerID *int64
	ApplicantTeamID   *int64
	WeightClass       *string
	ParticipantCount  *int
	UniformColor      *string
	Message           string
	ApplicantName     string
	TeamName          string
	SportLabel        string
}

// AcceptOutcome reports what an acceptance decided.
type AcceptOutcome struct {
	Match    models.Match         `json:"match"`
	Accepted models.Application   `json:"accepted"`
	Rejected []models.Application `json:"rejected,omitempty"`
}

// Lifecycle is the application lifecycle engine: the one component allowed to
// move matches and applications between states.
type Lifecycle interface {
	SubmitApplication(ctx context.Context, in SubmitApplicationInput) (models.Application, error)
	AcceptApplication(ctx context.Context, applicationID, byUserID int64) (AcceptOutcome, error)
	RejectApplication(ctx context.Context, applicationID, byUserID int64) (models.Application, error)
	CancelApplication(ctx context.Context, applicationID, byUserID int64) error
	CancelMatch(ctx context.Context, matchID, byUserID int64) (models.Match, error)
}

// LifecycleService implements Lifecycle over the persistence gateway.
//
// Status flips are transactional in the store; chat and notification fan-out
// runs after commit and is best-effort. A failed notification is logged and
// counted, never used to unwind an accepted or rejected state.
type LifecycleService struct {
	matches repositories.MatchRepository
	apps    repositories.ApplicationRepository
	rooms   repositories.ChatRoomRepository
	msgs    repositories.MessageRepository
	notifs  repositories.NotificationRepository
	roster  repositories.RosterRepository
	hub     Broadcaster
}

// NewLifecycleService builds a LifecycleService. hub may be nil.
func NewLifecycleService(
	matches repositories.MatchRepository,
	apps repositories.ApplicationRepository,
	rooms repositories.ChatRoomRepository,
	msgs repositories.MessageRepository,
	notifs repositories.NotificationRepository,
	roster repositories.RosterRepository,
	hub Broadcaster,
) *LifecycleService {
	return &LifecycleService{
		matches: matches,
		apps:    apps,
		rooms:   rooms,
		msgs:    msgs,
		notifs:  notifs,
		roster:  roster,
		hub:     hub,
	}
}

// SubmitApplication creates a PENDING bid on an OPEN match. Authority is
// re-validated here even though the candidate resolver already filtered the
// choices: for team sports the caller must captain the team, for individual
// sports they must own the player or lead one of the player's teams.
func (s *LifecycleService) SubmitApplication(ctx context.Context, in SubmitApplicationInput) (models.Application, error) {
	match, err := s.matches.GetByID(ctx, in.MatchID)
	if err != nil {
		return models.Application{}, err
	}
	if match.Status != models.MatchOpen {
		return models.Application{}, apperrors.InvalidState("match is not open for applications")
	}
	if match.HostUserID == in.ApplicantUserID {
		return models.Application{}, apperrors.NotAuthorized("host cannot apply to their own match")
	}

	if err := s.authorizeApplicant(ctx, match, in); err != nil {
		return models.Application{}, err
	}

	app := models.Application{
		MatchID:           in.MatchID,
		ApplicantUserID:   in.ApplicantUserID,
		ApplicantPlayerID: in.ApplicantPlayerID,
		ApplicantTeamID:   in.ApplicantTeamID,
		WeightClass:       in.WeightClass,
		ParticipantCount:  in.ParticipantCount,
		UniformColor:      in.UniformColor,
		Message:           in.Message,
	}
	if err := s.apps.Create(ctx, &app); err != nil {
		return models.Application{}, err
	}

	applicant := in.ApplicantName
	if in.TeamName != "" {
		applicant = in.TeamName
	}
	s.notify(ctx, models.Notification{
		ReceiverID:  match.HostUserID,
		Type:        models.NotificationMatchApply,
		Content:     fmt.Sprintf("%s applied to your %s match", applicant, in.SportLabel),
		RedirectURL: fmt.Sprintf("/matches/%d/applications", match.ID),
		Metadata:    lifecycleMetadata(match.ID, app.ID),
	})

	s.publishLifecycleEvent(ctx, "application_submitted", match.ID, app.ID)
	observability.IncLifecycleTransition("application_submitted")
	return app, nil
}

func (s *LifecycleService) authorizeApplicant(ctx context.Context, match models.Match, in SubmitApplicationInput) error {
	if match.SportType.IsTeamSport() {
		if in.ApplicantTeamID == nil {
			return apperrors.InvalidState("team sport applications must name a team")
		}
		role, err := s.roster.RoleOf(ctx, in.ApplicantUserID, *in.ApplicantTeamID)
		if err != nil {
			return err
		}
		if role != models.RoleLeader {
			return apperrors.NotAuthorized("only the team captain can apply on behalf of a team")
		}
		return nil
	}

	if in.ApplicantPlayerID == nil {
		return apperrors.InvalidState("applications must name a player")
	}
	player, err := s.roster.GetPlayer(ctx, *in.ApplicantPlayerID)
	if err != nil {
		return err
	}
	if player.UserID == in.ApplicantUserID {
		return nil
	}
	leads, err := s.roster.IsRosterLeaderFor(ctx, in.ApplicantUserID, player.ID)
	if err != nil {
		return err
	}
	if !leads {
		return apperrors.NotAuthorized("player does not belong to the applicant")
	}
	return nil
}

// AcceptApplication schedules the match for one PENDING application. The
// status flips (accept, schedule, auto-reject competitors) commit together;
// afterwards the winner's room gets a match_scheduled system message, both
// parties are notified, and every auto-rejected applicant gets a rejection
// message in their room (if one already exists) plus a notification.
func (s *LifecycleService) AcceptApplication(ctx context.Context, applicationID, byUserID int64) (AcceptOutcome, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return AcceptOutcome{}, err
	}
	match, err := s.matches.GetByID(ctx, app.MatchID)
	if err != nil {
		return AcceptOutcome{}, err
	}
	if match.HostUserID != byUserID {
		return AcceptOutcome{}, apperrors.NotAuthorized("only the host can accept applications")
	}
	if app.Status != models.ApplicationPending {
		return AcceptOutcome{}, apperrors.InvalidState("application is not pending")
	}
	if match.Status != models.MatchOpen {
		return AcceptOutcome{}, apperrors.InvalidState("match is not open")
	}

	result, err := s.apps.AcceptWithAutoReject(ctx, applicationID)
	if err != nil {
		return AcceptOutcome{}, err
	}
	match = result.Match
	accepted := result.Accepted

	room, _, err := s.rooms.ResolveOrCreate(ctx, models.RoomKey{
		MatchID:           match.ID,
		HostID:            match.HostUserID,
		ApplicantUserID:   accepted.ApplicantUserID,
		ApplicantPlayerID: accepted.ApplicantPlayerID,
		ApplicantTeamID:   accepted.ApplicantTeamID,
	})
	if err != nil {
		s.reportSideEffect("chat_room", err)
	} else {
		s.systemMessage(ctx, room.ID, byUserID, models.SystemMatchScheduled)
	}

	s.notify(ctx, models.Notification{
		ReceiverID:  match.HostUserID,
		Type:        models.NotificationMatchAccepted,
		Content:     "Your match is scheduled",
		RedirectURL: fmt.Sprintf("/matches/%d", match.ID),
		Metadata:    lifecycleMetadata(match.ID, accepted.ID),
	})
	s.notify(ctx, models.Notification{
		ReceiverID:  accepted.ApplicantUserID,
		Type:        models.NotificationMatchAccepted,
		Content:     "Your application was accepted",
		RedirectURL: fmt.Sprintf("/matches/%d", match.ID),
		Metadata:    lifecycleMetadata(match.ID, accepted.ID),
	})

	for _, rejected := range result.Rejected {
		s.rejectionFanOut(ctx, match, rejected, byUserID)
	}

	s.publishLifecycleEvent(ctx, "application_accepted", match.ID, accepted.ID)
	observability.IncLifecycleTransition("application_accepted")
	return AcceptOutcome{Match: match, Accepted: accepted, Rejected: result.Rejected}, nil
}

// rejectionFanOut appends a match_rejected system message to the applicant's
// existing room, never creating one, and records a notification.
func (s *LifecycleService) rejectionFanOut(ctx context.Context, match models.Match, rejected models.Application, byUserID int64) {
	room, err := s.rooms.Find(ctx, models.RoomKey{
		MatchID:           match.ID,
		HostID:            match.HostUserID,
		ApplicantUserID:   rejected.ApplicantUserID,
		ApplicantPlayerID: rejected.ApplicantPlayerID,
		ApplicantTeamID:   rejected.ApplicantTeamID,
	})
	if err == nil {
		s.systemMessage(ctx, room.ID, byUserID, models.SystemMatchRejected)
	} else if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		s.reportSideEffect("chat_room", err)
	}

	s.notify(ctx, models.Notification{
		ReceiverID:  rejected.ApplicantUserID,
		Type:        models.NotificationMatchRejected,
		Content:     "Your application was not selected",
		RedirectURL: fmt.Sprintf("/matches/%d", match.ID),
		Metadata:    lifecycleMetadata(match.ID, rejected.ID),
	})
	observability.IncLifecycleTransition("application_rejected")
}

// RejectApplication turns down a single PENDING application.
func (s *LifecycleService) RejectApplication(ctx context.Context, applicationID, byUserID int64) (models.Application, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}
	match, err := s.matches.GetByID(ctx, app.MatchID)
	if err != nil {
		return models.Application{}, err
	}
	if match.HostUserID != byUserID {
		return models.Application{}, apperrors.NotAuthorized("only the host can reject applications")
	}
	if app.Status != models.ApplicationPending {
		return models.Application{}, apperrors.InvalidState("application is not pending")
	}

	rejected, err := s.apps.Reject(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}

	s.rejectionFanOut(ctx, match, rejected, byUserID)
	s.publishLifecycleEvent(ctx, "application_rejected", match.ID, rejected.ID)
	return rejected, nil
}

// CancelApplication withdraws the caller's own PENDING bid. The row is gone
// afterwards, so the host notification is built from a snapshot taken first.
func (s *LifecycleService) CancelApplication(ctx context.Context, applicationID, byUserID int64) error {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.ApplicantUserID != byUserID {
		return apperrors.NotAuthorized("only the applicant can withdraw an application")
	}
	if app.Status != models.ApplicationPending {
		return apperrors.InvalidState("only pending applications can be withdrawn")
	}
	match, err := s.matches.GetByID(ctx, app.MatchID)
	if err != nil {
		return err
	}

	if err := s.apps.DeletePending(ctx, applicationID, byUserID); err != nil {
		return err
	}

	s.notify(ctx, models.Notification{
		ReceiverID:  match.HostUserID,
		Type:        models.NotificationMatchCancel,
		Content:     "An applicant withdrew from your match",
		RedirectURL: fmt.Sprintf("/matches/%d/applications", match.ID),
		Metadata:    lifecycleMetadata(match.ID, app.ID),
	})
	s.publishLifecycleEvent(ctx, "application_withdrawn", match.ID, app.ID)
	observability.IncLifecycleTransition("application_withdrawn")
	return nil
}

// CancelMatch soft-deletes the host's match. Chat rooms and messages are left
// untouched; if an accepted applicant exists they are notified.
func (s *LifecycleService) CancelMatch(ctx context.Context, matchID, byUserID int64) (models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return models.Match{}, err
	}
	if match.HostUserID != byUserID {
		return models.Match{}, apperrors.NotAuthorized("only the host can cancel a match")
	}
	if match.Status == models.MatchDeleted {
		return models.Match{}, apperrors.InvalidState("match is already deleted")
	}

	deleted, err := s.matches.SoftDelete(ctx, matchID)
	if err != nil {
		return models.Match{}, err
	}

	accepted, err := s.apps.FindAccepted(ctx, matchID)
	if err == nil {
		s.notify(ctx, models.Notification{
			ReceiverID:  accepted.ApplicantUserID,
			Type:        models.NotificationMatchCancel,
			Content:     "Your scheduled match was cancelled",
			RedirectURL: fmt.Sprintf("/matches/%d", matchID),
			Metadata:    lifecycleMetadata(matchID, accepted.ID),
		})
	} else if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		s.reportSideEffect("notification", err)
	}

	s.publishLifecycleEvent(ctx, "match_cancelled", matchID, 0)
	observability.IncLifecycleTransition("match_cancelled")
	return deleted, nil
}

// systemMessage appends a lifecycle system message and broadcasts it.
// Best-effort: failures are reported, never propagated.
func (s *LifecycleService) systemMessage(ctx context.Context, roomID, senderID int64, event models.SystemEvent) {
	msg, err := s.msgs.Create(ctx, roomID, senderID, models.MessageKindSystem, models.SystemContent(event))
	if err != nil {
		s.reportSideEffect("system_message", err)
		return
	}
	if s.hub != nil {
		s.hub.BroadcastRoomMessage(roomID, msg)
	}
}

func (s *LifecycleService) notify(ctx context.Context, n models.Notification) {
	if err := s.notifs.Create(ctx, &n); err != nil {
		s.reportSideEffect("notification", err)
	}
}

func (s *LifecycleService) reportSideEffect(effect string, err error) {
	log.Printf("lifecycle side effect failed effect=%s: %v", effect, err)
	observability.IncSideEffectFailure(effect)
}

func (s *LifecycleService) publishLifecycleEvent(ctx context.Context, name string, matchID, applicationID int64) {
	payload := map[string]interface{}{
		"match_id": matchID,
	}
	if applicationID != 0 {
		payload["application_id"] = applicationID
	}
	_ = observability.PublishEvent(ctx, "lifecycle."+name, observability.EventEnvelope{
		EventType: "lifecycle_events",
		EventName: name,
		Payload:   payload,
	}, nil)
}

func lifecycleMetadata(matchID, applicationID int64) []byte {
	return []byte(fmt.Sprintf(`{"match_id": %d, "application_id": %d}`, matchID, applicationID))
}
