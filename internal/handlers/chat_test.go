package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matchup-service/internal/apperrors"
	"matchup-service/internal/middleware"
	"matchup-service/internal/models"
	"matchup-service/internal/services"
)

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, int64(1))
		c.Next()
	})
	r.GET("/chats", handler.ListChats)
	r.POST("/chats/start", handler.StartChat)
	r.GET("/chats/:chat_id/messages", handler.GetChatMessages)
	r.POST("/chats/:chat_id/messages", handler.PostChatMessage)
	r.DELETE("/chats/:chat_id/me", handler.LeaveChat)
	return r
}

func TestListChatsSuccess(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("ListRooms", mock.Anything, int64(1)).
		Return([]models.ChatRoom{{ID: 100, MatchID: 5, HostID: 1, ApplicantUserID: 2}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp["chats"], 1)
	chats.AssertExpectations(t)
}

func TestListChatsServiceError(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("ListRooms", mock.Anything, int64(1)).
		Return(([]models.ChatRoom)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	chats.AssertExpectations(t)
}

func TestStartChatSuccess(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("ResolveOrCreateRoom", mock.Anything, mock.MatchedBy(func(in services.StartChatInput) bool {
		return in.MatchID == 5 && in.ByUserID == 1 && in.ApplicantUserID == 2
	})).Return(models.ChatRoom{ID: 100, MatchID: 5, HostID: 1, ApplicantUserID: 2}, nil).Once()

	body := bytes.NewBufferString(`{"match_id":5,"applicant_user_id":2}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/start", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	chats.AssertExpectations(t)
}

func TestStartChatNotParty(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("ResolveOrCreateRoom", mock.Anything, mock.Anything).
		Return(models.ChatRoom{}, apperrors.NotAuthorized("caller is not a party to this chat")).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats/start", bytes.NewBufferString(`{"match_id":5,"applicant_user_id":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	chats.AssertExpectations(t)
}

func TestGetChatMessagesForbidden(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("Messages", mock.Anything, int64(100), int64(1)).
		Return(([]models.Message)(nil), apperrors.NotAuthorized("not a room participant")).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/100/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	chats.AssertExpectations(t)
}

func TestPostChatMessageSuccess(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("AppendMessage", mock.Anything, int64(100), int64(1), "hello").
		Return(models.Message{ID: 7, ChatRoomID: 100, SenderID: 1, Content: "hello"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats/100/messages", bytes.NewBufferString(`{"content":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	chats.AssertExpectations(t)
}

func TestPostChatMessageInvalidID(t *testing.T) {
	router := setupChatRouter(NewChatHandler(new(ChatRoomsMock)))

	req := httptest.NewRequest(http.MethodPost, "/chats/abc/messages", bytes.NewBufferString(`{"content":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveChatSuccess(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("LeaveRoom", mock.Anything, int64(100), int64(1)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/chats/100/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	chats.AssertExpectations(t)
}

func TestLeaveChatRoomGone(t *testing.T) {
	chats := new(ChatRoomsMock)
	router := setupChatRouter(NewChatHandler(chats))

	chats.On("LeaveRoom", mock.Anything, int64(100), int64(1)).
		Return(apperrors.NotFound("chat room not found")).Once()

	req := httptest.NewRequest(http.MethodDelete, "/chats/100/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	chats.AssertExpectations(t)
}
