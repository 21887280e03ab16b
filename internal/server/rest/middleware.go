package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"authstack/internal/common"
	"authstack/internal/server/models"
)

// ContextUserKey is the gin context key under which RequireAuth stores the
// resolved user.
const ContextUserKey = "auth.user"

// RequireAuth rejects requests that do not carry a resolvable session token
// with 401 and otherwise makes the user available to the handler.
func (s *Server) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := s.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(common.MsgSignInRequired))
			return
		}

		user, err := s.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(common.MsgSignInRequired))
				return
			}
			s.logger.Error(c.Request.Context(), "token resolution failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("Internal server error"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by RequireAuth. Handlers behind the
// middleware can assume it is present.
func currentUser(c *gin.Context) *models.User {
	user, _ := c.Get(ContextUserKey)
	u, _ := user.(*models.User)
	return u
}
