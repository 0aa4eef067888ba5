package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/service"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// browser clients connect cross-origin from the frontend host
		return true
	},
}

// WebSocketHandler serves the appointment reminder push channel
type WebSocketHandler struct {
	sessionService *service.SessionService
	authService    *service.AuthService
	logger         *zap.Logger
}

// NewWebSocketHandler creates the websocket handler
func NewWebSocketHandler(sessionService *service.SessionService, authService *service.AuthService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		sessionService: sessionService,
		authService:    authService,
		logger:         logger,
	}
}

// HandleWebSocket handles GET /ws?token=...
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(401, gin.H{"error": "token is required"})
		return
	}

	username, err := h.authService.ResolveToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(401, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	h.sessionService.RegisterUser(username, conn, sessionID, c.ClientIP())
	defer h.sessionService.RemoveBySessionID(sessionID)

	h.logger.Info("websocket connected",
		zap.String("username", username),
		zap.String("sessionId", sessionID))

	for {
		var msg model.PushMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("websocket read error", zap.Error(err))
			}
			break
		}

		switch msg.Type {
		case "HEARTBEAT":
			h.sessionService.UpdateHeartbeat(username)
		default:
			h.logger.Warn("unknown websocket message type",
				zap.String("username", username),
				zap.String("type", msg.Type))
		}
	}

	h.logger.Info("websocket disconnected", zap.String("username", username))
}
