package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/skillmatch/internal/pkg/jwt"
	"github.com/xxxsen/skillmatch/internal/pkg/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "Token is missing")
			return
		}
		// a bare token without the Bearer scheme is accepted as well
		token := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
			if !strings.EqualFold(parts[0], "Bearer") {
				response.AbortError(c, http.StatusUnauthorized, "Invalid authorization header")
				return
			}
			token = strings.TrimSpace(parts[1])
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		if claims.Username != "" {
			c.Set(ContextUsernameKey, claims.Username)
		}
		c.Next()
	}
}
