package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	userdomain "github.com/reciply/reciply/internal/user/domain"
)

const (
	contextUserIDKey = "user_id"
	contextUserKey   = "user"

	userCacheTTL = 30 * time.Second
)

// AuthRequired verifies the bearer token and resolves the caller's user
// row, provisioning it on first sight.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity, err := s.authsvc.Verify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		u, cached := s.userCache.Get(identity.UserID)
		if !cached {
			u, err = s.usersvc.EnsureUser(c.Request.Context(), identity.UserID, identity.Email)
			if err != nil {
				AbortWithError(c, err)
				return
			}
			s.userCache.Set(identity.UserID, u, userCacheTTL)
		}

		c.Set(contextUserIDKey, u.ID)
		c.Set(contextUserKey, u)
		c.Next()
	}
}

// AdminRequired rejects non-admin callers. Must run after AuthRequired.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

func currentUser(c *gin.Context) userdomain.User {
	if v, ok := c.Get(contextUserKey); ok {
		if u, ok := v.(userdomain.User); ok {
			return u
		}
	}
	return userdomain.User{}
}
