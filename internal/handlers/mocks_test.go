package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"matchup-service/internal/models"
	"matchup-service/internal/services"
)

// Service-interface mocks live beside the handler tests; the shared mocks
// package covers only repository-level interfaces so it stays importable
// from the services tests.

type LifecycleMock struct {
	mock.Mock
}

func (m *LifecycleMock) SubmitApplication(ctx context.Context, in services.SubmitApplicationInput) (models.Application, error) {
	args := m.Called(ctx, in)
	var app models.Application
	if val := args.Get(0); val != nil {
		app = val.(models.Application)
	}
	return app, args.Error(1)
}

func (m *LifecycleMock) AcceptApplication(ctx context.Context, applicationID, byUserID int64) (services.AcceptOutcome, error) {
	args := m.Called(ctx, applicationID, byUserID)
	var outcome services.AcceptOutcome
	if val := args.Get(0); val != nil {
		outcome = val.(services.AcceptOutcome)
	}
	return outcome, args.Error(1)
}

func (m *LifecycleMock) RejectApplication(ctx context.Context, applicationID, byUserID int64) (models.Application, error) {
	args := m.Called(ctx, applicationID, byUserID)
	var app models.Application
	if val := args.Get(0); val != nil {
		app = val.(models.Application)
	}
	return app, args.Error(1)
}

func (m *LifecycleMock) CancelApplication(ctx context.Context, applicationID, byUserID int64) error {
	args := m.Called(ctx, applicationID, byUserID)
	return args.Error(0)
}

func (m *LifecycleMock) CancelMatch(ctx context.Context, matchID, byUserID int64) (models.Match, error) {
	args := m.Called(ctx, matchID, byUserID)
	var match models.Match
	if val := args.Get(0); val != nil {
		match = val.(models.Match)
	}
	return match, args.Error(1)
}

type ChatRoomsMock struct {
	mock.Mock
}

func (m *ChatRoomsMock) ResolveOrCreateRoom(ctx context.Context, in services.StartChatInput) (models.ChatRoom, error) {
	args := m.Called(ctx, in)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomsMock) ListRooms(ctx context.Context, userID int64) ([]models.ChatRoom, error) {
	args := m.Called(ctx, userID)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *ChatRoomsMock) Messages(ctx context.Context, roomID, byUserID int64) ([]models.Message, error) {
	args := m.Called(ctx, roomID, byUserID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *ChatRoomsMock) AppendMessage(ctx context.Context, roomID, senderID int64, content string) (models.Message, error) {
	args := m.Called(ctx, roomID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *ChatRoomsMock) LeaveRoom(ctx context.Context, roomID, byUserID int64) error {
	args := m.Called(ctx, roomID, byUserID)
	return args.Error(0)
}

type CandidateResolverMock struct {
	mock.Mock
}

func (m *CandidateResolverMock) Candidates(ctx context.Context, matchID, userID int64) ([]models.Candidate, error) {
	args := m.Called(ctx, matchID, userID)
	var candidates []models.Candidate
	if val := args.Get(0); val != nil {
		candidates = val.([]models.Candidate)
	}
	return candidates, args.Error(1)
}
