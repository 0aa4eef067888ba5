package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/service"
	"go.uber.org/zap"
)

// ChatHandler serves the chat endpoint
type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates the chat handler
func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat handles POST /chat. Scope rejections and empty input are normal
// 200 responses; provider failures surface as 502.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	username := c.GetString("username")

	resp, err := h.chatService.HandleMessage(c.Request.Context(), username, req.Message)
	if err != nil {
		h.logger.Error("chat pipeline failed",
			zap.String("username", username),
			zap.Error(err))
		c.JSON(502, gin.H{"error": "assistant is temporarily unavailable"})
		return
	}

	c.JSON(200, resp)
}
