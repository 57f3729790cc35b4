package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/auth"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
)

// AllowRoles rejects API callers whose role is not listed.
func AllowRoles(message string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !auth.Permits(principal.Role, roles...) {
			apierrors.Forbidden(c, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ConsoleRoles rejects console users whose role is not listed.
func ConsoleRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		if !auth.Permits(principal.Role, roles...) {
			c.String(http.StatusForbidden, auth.ErrPermissionDenied.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}
