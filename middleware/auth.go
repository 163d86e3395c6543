package middleware

import (
	"errors"
	"strings"

	"kacchi/model"
	"kacchi/utils"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

type TokenParser interface {
	Parse(token string) (userID string, err error)
}

// AuthMiddleware requires a valid bearer token and stores its user id.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Access denied! Please log in to continue")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Authentication token is missing")
			return
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			if errors.Is(err, model.ErrTokenExpired) {
				utils.Unauthorized(c, "Your session has expired")
				return
			}
			utils.Unauthorized(c, "Invalid authentication token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the id set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
