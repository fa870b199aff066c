package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"matchup-service/internal/models"
	"matchup-service/internal/repositories"
)

type MatchRepositoryMock struct {
	mock.Mock
}

func (m *MatchRepositoryMock) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MatchRepositoryMock) GetByID(ctx context.Context, id int64) (models.Match, error) {
	args := m.Called(ctx, id)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Error(1)
}

func (m *MatchRepositoryMock) List(ctx context.Context, status models.MatchStatus, sport models.SportType) ([]models.Match, error) {
	args := m.Called(ctx, status, sport)
	var matches []models.Match
	if val := args.Get(0); val != nil {
		matches = val.([]models.Match)
	}
	return matches, args.Error(1)
}

func (m *MatchRepositoryMock) SoftDelete(ctx context.Context, id int64) (models.Match, error) {
	args := m.Called(ctx, id)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Error(1)
}

type ApplicationRepositoryMock struct {
	mock.Mock
}

func (m *ApplicationRepositoryMock) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *ApplicationRepositoryMock) GetByID(ctx context.Context, id int64) (models.Application, error) {
	args := m.Called(ctx, id)
	var app models.Application
	if val := args.Get(0); val != nil {
		app = val.(models.Application)
	}
	return app, args.Error(1)
}

func (m *ApplicationRepositoryMock) ListByMatch(ctx context.Context, matchID int64) ([]models.Application, error) {
	args := m.Called(ctx, matchID)
	var apps []models.Application
	if val := args.Get(0); val != nil {
		apps = val.([]models.Application)
	}
	return apps, args.Error(1)
}

func (m *ApplicationRepositoryMock) ListLiveByMatch(ctx context.Context, matchID int64) ([]models.Application, error) {
	args := m.Called(ctx, matchID)
	var apps []models.Application
	if val := args.Get(0); val != nil {
		apps = val.([]models.Application)
	}
	return apps, args.Error(1)
}

func (m *ApplicationRepositoryMock) AcceptWithAutoReject(ctx context.Context, applicationID int64) (repositories.AcceptResult, error) {
	args := m.Called(ctx, applicationID)
	var result repositories.AcceptResult
	if val := args.Get(0); val != nil {
		result = val.(repositories.AcceptResult)
	}
	return result, args.Error(1)
}

func (m *ApplicationRepositoryMock) Reject(ctx context.Context, applicationID int64) (models.Application, error) {
	args := m.Called(ctx, applicationID)
	var app models.Application
	if val := args.Get(0); val != nil {
		app = val.(models.Application)
	}
	return app, args.Error(1)
}

func (m *ApplicationRepositoryMock) DeletePending(ctx context.Context, applicationID, applicantUserID int64) error {
	args := m.Called(ctx, applicationID, applicantUserID)
	return args.Error(0)
}

func (m *ApplicationRepositoryMock) FindAccepted(ctx context.Context, matchID int64) (models.Application, error) {
	args := m.Called(ctx, matchID)
	var app models.Application
	if val := args.Get(0); val != nil {
		app = val.(models.Application)
	}
	return app, args.Error(1)
}

type ChatRoomRepositoryMock struct {
	mock.Mock
}

func (m *ChatRoomRepositoryMock) ResolveOrCreate(ctx context.Context, key models.RoomKey) (models.ChatRoom, bool, error) {
	args := m.Called(ctx, key)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Bool(1), args.Error(2)
}

func (m *ChatRoomRepositoryMock) Find(ctx context.Context, key models.RoomKey) (models.ChatRoom, error) {
	args := m.Called(ctx, key)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomRepositoryMock) GetByID(ctx context.Context, id int64) (models.ChatRoom, error) {
	args := m.Called(ctx, id)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomRepositoryMock) ListForUser(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	args := m.Called(ctx, userID)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *ChatRoomRepositoryMock) MarkOut(ctx context.Context, roomID int64, host bool) (models.ChatRoom, error) {
	args := m.Called(ctx, roomID, host)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomRepositoryMock) Delete(ctx context.Context, roomID int64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, roomID, senderID int64, kind models.MessageKind, content string) (models.Message, error) {
	args := m.Called(ctx, roomID, senderID, kind, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListByRoom(ctx context.Context, roomID int64) ([]models.Message, error) {
	args := m.Called(ctx, roomID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListForReceiver(ctx context.Context, receiverID int64) ([]models.Notification, error) {
	args := m.Called(ctx, receiverID)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, id, receiverID int64) error {
	args := m.Called(ctx, id, receiverID)
	return args.Error(0)
}

type RosterRepositoryMock struct {
	mock.Mock
}

func (m *RosterRepositoryMock) GetPlayer(ctx context.Context, id int64) (models.Player, error) {
	args := m.Called(ctx, id)
	var player models.Player
	if val := args.Get(0); val != nil {
		player = val.(models.Player)
	}
	return player, args.Error(1)
}

func (m *RosterRepositoryMock) GetTeam(ctx context.Context, id int64) (models.Team, error) {
	args := m.Called(ctx, id)
	var team models.Team
	if val := args.Get(0); val != nil {
		team = val.(models.Team)
	}
	return team, args.Error(1)
}

func (m *RosterRepositoryMock) PlayersByUserAndSport(ctx context.Context, userID int64, sport models.SportType) ([]models.Player, error) {
	args := m.Called(ctx, userID, sport)
	var players []models.Player
	if val := args.Get(0); val != nil {
		players = val.([]models.Player)
	}
	return players, args.Error(1)
}

func (m *RosterRepositoryMock) TeamsOfPlayer(ctx context.Context, playerID int64) ([]models.TeamMembership, error) {
	args := m.Called(ctx, playerID)
	var memberships []models.TeamMembership
	if val := args.Get(0); val != nil {
		memberships = val.([]models.TeamMembership)
	}
	return memberships, args.Error(1)
}

func (m *RosterRepositoryMock) Roster(ctx context.Context, teamID int64) ([]models.Player, error) {
	args := m.Called(ctx, teamID)
	var players []models.Player
	if val := args.Get(0); val != nil {
		players = val.([]models.Player)
	}
	return players, args.Error(1)
}

func (m *RosterRepositoryMock) RoleOf(ctx context.Context, userID, teamID int64) (models.TeamRole, error) {
	args := m.Called(ctx, userID, teamID)
	var role models.TeamRole
	if val := args.Get(0); val != nil {
		role = val.(models.TeamRole)
	}
	return role, args.Error(1)
}

func (m *RosterRepositoryMock) IsRosterLeaderFor(ctx context.Context, userID, playerID int64) (bool, error) {
	args := m.Called(ctx, userID, playerID)
	return args.Bool(0), args.Error(1)
}

type BroadcasterMock struct {
	mock.Mock
}

func (m *BroadcasterMock) BroadcastRoomMessage(roomID int64, msg models.Message) {
	m.Called(roomID, msg)
}

func (m *BroadcasterMock) BroadcastRoomClosed(roomID int64) {
	m.Called(roomID)
}
