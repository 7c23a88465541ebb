package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKey is where the middleware parks the resolved identity for
// handlers.
const ContextKey = "auth.identity"

// RequireAuth redirects anonymous callers to the home page. Any signed-in
// role passes.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(ContextKey, id)
		c.Next()
	}
}

// RequireRole additionally pins the route to one role; everyone else is sent
// to that role's login page.
func RequireRole(role string) gin.HandlerFunc {
	loginPath := "/admin_login"
	if role == RoleTeacher {
		loginPath = "/teacher_login"
	}
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok || id.Role != role {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Set(ContextKey, id)
		c.Next()
	}
}

// MustIdentity fetches the identity placed by the middleware. Only valid on
// routes behind RequireAuth/RequireRole.
func MustIdentity(c *gin.Context) *Identity {
	return c.MustGet(ContextKey).(*Identity)
}
