// Package middleware provides authentication and authorization middleware
// for the Gin web framework.
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/nami21/support-portal/internal/models"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// Session keys for storing user information
const (
	// UserIDKey is the key used to store the user id in the session
	UserIDKey = "user_id"
	// UserRoleKey is the key used to store the user's role in the session
	UserRoleKey = "user_role"
	// UserEmailKey is the key used to store the user's email in the session
	UserEmailKey = "user_email"
)

func abortUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": "Authentication required",
		"code":  string(contextutils.ErrorCodeUnauthorized),
	})
	c.Abort()
}

// sessionIdentity reads the authenticated identity from the session,
// returning ok=false when the session is absent or malformed.
func sessionIdentity(c *gin.Context) (userID, role string, ok bool) {
	session := sessions.Default(c)

	userID, ok = session.Get(UserIDKey).(string)
	if !ok || userID == "" {
		return "", "", false
	}
	role, ok = session.Get(UserRoleKey).(string)
	if !ok || role == "" {
		return "", "", false
	}
	return userID, role, true
}

// RequireAuth returns a middleware that requires an authenticated session.
// The acting identity is copied into the request context so services can
// apply role and ownership checks without touching the session layer.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := sessionIdentity(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		ctx := contextutils.WithUserID(c.Request.Context(), userID)
		ctx = contextutils.WithUserRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)

		c.Next()
	}
}

// RequireRole returns a middleware that requires an authenticated session
// holding one of the given roles. Used for the admin-only user management
// surface; everything else is gated per-operation in the services.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		userID, role, ok := sessionIdentity(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		if !allowed[models.Role(role)] {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
				"code":  string(contextutils.ErrorCodeForbidden),
			})
			c.Abort()
			return
		}

		ctx := contextutils.WithUserID(c.Request.Context(), userID)
		ctx = contextutils.WithUserRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)

		c.Next()
	}
}
