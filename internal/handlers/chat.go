package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup-service/internal/models"
	"matchup-service/internal/services"
)

// ChatHandler manages chat room endpoints.
type ChatHandler struct {
	chats services.ChatRooms
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats services.ChatRooms) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// ListChats returns the rooms the authenticated user is still in.
func (h *ChatHandler) ListChats(c *gin.Context) {
	rooms, err := h.chats.ListRooms(c.Request.Context(), authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if rooms == nil {
		rooms = []models.ChatRoom{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": rooms})
}

// StartChat resolves or creates the room for a match and applicant pair.
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req struct {
		MatchID           int64  `json:"match_id" binding:"required"`
		ApplicantUserID   int64  `json:"applicant_user_id" binding:"required"`
		ApplicantPlayerID *int64 `json:"applicant_player_id,omitempty"`
		ApplicantTeamID   *int64 `json:"applicant_team_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.chats.ResolveOrCreateRoom(c.Request.Context(), services.StartChatInput{
		MatchID:           req.MatchID,
		ByUserID:          authedUserID(c),
		ApplicantUserID:   req.ApplicantUserID,
		ApplicantPlayerID: req.ApplicantPlayerID,
		ApplicantTeamID:   req.ApplicantTeamID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetChatMessages returns the room feed for a participant.
func (h *ChatHandler) GetChatMessages(c *gin.Context) {
	roomID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}
	msgs, err := h.chats.Messages(c.Request.Context(), roomID, authedUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostChatMessage stores a user message and broadcasts it.
func (h *ChatHandler) PostChatMessage(c *gin.Context) {
	roomID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chats.AppendMessage(c.Request.Context(), roomID, authedUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// LeaveChat records the caller's exit from the room.
func (h *ChatHandler) LeaveChat(c *gin.Context) {
	roomID, ok := pathID(c, "chat_id")
	if !ok {
		return
	}
	if err := h.chats.LeaveRoom(c.Request.Context(), roomID, authedUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
