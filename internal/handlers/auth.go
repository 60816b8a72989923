package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login authenticates the club administrator and returns a JWT token
func Login(admin *auth.Admin, tokens *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "username and password are required")
			return
		}

		username, err := admin.Authenticate(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrLoginDisabled) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Password authentication not configured"})
				return
			}
			logger.Warn("login failed", zap.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, expiresAt, err := tokens.GenerateToken(username)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:     token,
			Username:  username,
			ExpiresAt: expiresAt,
		})
	}
}
