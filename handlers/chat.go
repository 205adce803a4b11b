package handlers

import (
	"net/http"

	"lexbook/models"
	"lexbook/services/chat"
	"lexbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler answers visitor messages for the site assistant widget.
type ChatHandler struct {
	Service *chat.Service
	Logger  *zap.Logger
}

// NewChatHandler returns a ChatHandler.
func NewChatHandler(svc *chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: svc, Logger: logger}
}

// Message answers one chat message. Generation failures still return 200 with
// the standard fallback reply so the widget always has something to show.
func (h *ChatHandler) Message(c *gin.Context) {
	var input struct {
		VisitorID string               `json:"visitorId"`
		Message   string               `json:"message"`
		History   []models.ChatMessage `json:"history"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Message == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "message is required")
		return
	}
	if input.VisitorID == "" {
		input.VisitorID = uuid.New().String()
	}

	reply, err := h.Service.Reply(c.Request.Context(), input.VisitorID, input.Message, input.History)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"visitorId": input.VisitorID, "reply": chat.FallbackReply, "fallback": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"visitorId": input.VisitorID, "reply": reply})
}
