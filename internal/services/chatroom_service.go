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

// StartChatInput identifies the room to resolve or create. When the applicant
// initiates, ApplicantUserID equals the caller; when the host initiates, it
// names the counterparty.
type StartChatInput struct {
	MatchID           int64
	ByUserID          int64
	ApplicantUserID   int64
	ApplicantPlayerID *int64
	ApplicantTeamID   *int64
}

// ChatRooms manages room lifetime and the message feed.
type ChatRooms interface {
	ResolveOrCreateRoom(ctx context.Context, in StartChatInput) (models.ChatRoom, error)
	ListRooms(ctx context.Context, userID int64) ([]models.ChatRoom, error)
	Messages(ctx context.Context, roomID, byUserID int64) ([]models.Message, error)
	AppendMessage(ctx context.Context, roomID, senderID int64, content string) (models.Message, error)
	LeaveRoom(ctx context.Context, roomID, byUserID int64) error
}

// ChatRoomService implements ChatRooms.
type ChatRoomService struct {
	matches repositories.MatchRepository
	rooms   repositories.ChatRoomRepository
	msgs    repositories.MessageRepository
	notifs  repositories.NotificationRepository
	hub     Broadcaster
}

// NewChatRoomService builds a ChatRoomService. hub may be nil.
func NewChatRoomService(
	matches repositories.MatchRepository,
	rooms repositories.ChatRoomRepository,
	msgs repositories.MessageRepository,
	notifs repositories.NotificationRepository,
	hub Broadcaster,
) *ChatRoomService {
	return &ChatRoomService{
		matches: matches,
		rooms:   rooms,
		msgs:    msgs,
		notifs:  notifs,
		hub:     hub,
	}
}

// ResolveOrCreateRoom returns the room for the tuple, creating it when either
// party makes first contact. The store's unique index keeps concurrent calls
// from producing two rooms. A newly created room notifies the counterparty.
func (s *ChatRoomService) ResolveOrCreateRoom(ctx context.Context, in StartChatInput) (models.ChatRoom, error) {
	match, err := s.matches.GetByID(ctx, in.MatchID)
	if err != nil {
		return models.ChatRoom{}, err
	}
	if in.ByUserID != match.HostUserID && in.ByUserID != in.ApplicantUserID {
		return models.ChatRoom{}, apperrors.NotAuthorized("caller is not a party to this chat")
	}
	if in.ApplicantUserID == match.HostUserID {
		return models.ChatRoom{}, apperrors.InvalidState("host cannot chat with themselves")
	}

	room, created, err := s.rooms.ResolveOrCreate(ctx, models.RoomKey{
		MatchID:           match.ID,
		HostID:            match.HostUserID,
		ApplicantUserID:   in.ApplicantUserID,
		ApplicantPlayerID: in.ApplicantPlayerID,
		ApplicantTeamID:   in.ApplicantTeamID,
	})
	if err != nil {
		return models.ChatRoom{}, err
	}

	if created {
		counterparty := room.ApplicantUserID
		if in.ByUserID == room.ApplicantUserID {
			counterparty = room.HostID
		}
		n := models.Notification{
			ReceiverID:  counterparty,
			Type:        models.NotificationChatOpen,
			Content:     "A chat was opened for your match",
			RedirectURL: fmt.Sprintf("/chats/%d/messages", room.ID),
			Metadata:    lifecycleMetadata(room.MatchID, 0),
		}
		if err := s.notifs.Create(ctx, &n); err != nil {
			log.Printf("chat open notification failed room=%d: %v", room.ID, err)
			observability.IncSideEffectFailure("notification")
		}
	}
	return room, nil
}

// ListRooms returns the rooms the user is still in.
func (s *ChatRoomService) ListRooms(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	return s.rooms.ListForUser(ctx, userID)
}

// Messages returns the room feed for a participant.
func (s *ChatRoomService) Messages(ctx context.Context, roomID, byUserID int64) ([]models.Message, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(byUserID) {
		return nil, apperrors.NotAuthorized("not a room participant")
	}
	return s.msgs.ListByRoom(ctx, roomID)
}

// AppendMessage stores a user message and broadcasts it to subscribers.
func (s *ChatRoomService) AppendMessage(ctx context.Context, roomID, senderID int64, content string) (models.Message, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return models.Message{}, err
	}
	if !room.HasParticipant(senderID) {
		return models.Message{}, apperrors.NotAuthorized("not a room participant")
	}

	msg, err := s.msgs.Create(ctx, roomID, senderID, models.MessageKindUser, content)
	if err != nil {
		return models.Message{}, err
	}
	if s.hub != nil {
		s.hub.BroadcastRoomMessage(roomID, msg)
	}
	return msg, nil
}

// LeaveRoom records a user_left system message, sets the caller's out flag and
// hard-deletes the room once both sides have left, telling live subscribers
// the room is gone. The flag transition is idempotent; the message log is
// append-only, so every actual call adds one user_left entry.
func (s *ChatRoomService) LeaveRoom(ctx context.Context, roomID, byUserID int64) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasParticipant(byUserID) {
		return apperrors.NotAuthorized("not a room participant")
	}

	msg, err := s.msgs.Create(ctx, roomID, byUserID, models.MessageKindSystem, models.SystemContent(models.SystemUserLeft))
	if err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastRoomMessage(roomID, msg)
	}

	room, err = s.rooms.MarkOut(ctx, roomID, byUserID == room.HostID)
	if err != nil {
		return err
	}
	if room.Abandoned() {
		if err := s.rooms.Delete(ctx, roomID); err != nil {
			return err
		}
		if s.hub != nil {
			s.hub.BroadcastRoomClosed(roomID)
		}
		observability.IncLifecycleTransition("chat_room_reclaimed")
	}
	return nil
}
