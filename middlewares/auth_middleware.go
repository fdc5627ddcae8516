package middlewares

import (
	"context"
	"net/http"
	"strings"

	"healthtrack/utils"

	"github.com/gin-gonic/gin"
)

// UserChecker tells whether a token's account still exists.
type UserChecker interface {
	Exists(ctx context.Context, userID uint) (bool, error)
}

// AuthMiddleware validates the bearer token and stores the caller's id
// under "userID". Tokens of deleted accounts are rejected when users is set.
func AuthMiddleware(secret string, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := utils.ParseJWT(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if users != nil {
			ok, err := users.Exists(c.Request.Context(), userID)
			if err != nil {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account no longer exists"})
				return
			}
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// bearerToken also accepts ?token= because browsers cannot set headers on
// websocket upgrades.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	if t := c.Query("token"); t != "" && c.IsWebsocket() {
		return t, true
	}
	return "", false
}
