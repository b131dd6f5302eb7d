package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/server/auth"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

const ctxUserKey = "authUser"

// authRequired is the auth gate: it extracts the bearer token, verifies it,
// and re-resolves the embedded user id against live store state. Tokens are
// not revocable, so existence is re-checked on every call rather than
// trusted from the claims.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Access token required",
				"code":    "NO_TOKEN",
			})
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Token expired",
					"code":    "TOKEN_EXPIRED",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "User not found",
					"code":    "USER_NOT_FOUND",
				})
				return
			}
			s.logger.Error(c.Request.Context(), "auth user lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// userFromContext returns the user resolved by the auth gate.
func userFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
