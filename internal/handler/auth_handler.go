package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/service"
	"go.uber.org/zap"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(400, gin.H{"error": "Username already exists"})
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(200, gin.H{"message": "User registered successfully"})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(400, gin.H{"error": "Invalid username or password"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "login failed"})
		return
	}

	c.JSON(200, model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
