package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/services"
)

// ChatHandler serves the per-user support chat.
type ChatHandler struct {
	chatService *services.ChatService
	logger      *observability.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService, logger *observability.Logger) *ChatHandler {
	if chatService == nil {
		panic("chatService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ChatHandler{chatService: chatService, logger: logger}
}

// History returns the caller's chat history in conversation order.
func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chatService.History(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Send accepts a user message and returns the user/assistant exchange.
func (h *ChatHandler) Send(c *gin.Context) {
	var input models.ChatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	exchange, err := h.chatService.Send(c.Request.Context(), input.Content)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, exchange)
}

// Clear deletes the caller's chat history.
func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.chatService.Clear(c.Request.Context()); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
