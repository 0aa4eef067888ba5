package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/healthassist/healthassist-go/internal/service"
	"go.uber.org/zap"
)

// Auth resolves the bearer token to a username and stores it in the
// request context. Requests without a valid session are rejected.
func Auth(authService *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
