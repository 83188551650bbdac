package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/cart-approval-api/internal/platform/web"
	"github.com/ridloal/cart-approval-api/internal/user/domain"
	"github.com/ridloal/cart-approval-api/internal/user/service"
)

const currentUserKey = "currentUser"

// RequireAuth resolves the bearer token to an active user and stores it on the
// request context. The resolved role is always re-read from the database, not
// trusted from the token.
func RequireAuth(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			web.Fail(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserInactive) {
				web.Fail(c, http.StatusUnauthorized, "Invalid token or user not found.")
			} else {
				web.Fail(c, http.StatusInternalServerError, "Authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			web.Fail(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}
		if user.Role != domain.RoleAdmin {
			web.Fail(c, http.StatusForbidden, "Access denied. Admin role required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
