package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/constants"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
)

// PrincipalResolver loads the caller behind a session or a bearer token.
type PrincipalResolver interface {
	Principal(userID uint64) (*auth.Principal, error)
	PrincipalFromToken(accessToken string) (*auth.Principal, error)
}

// RequireSession checks if the console user is authenticated via session.
// Anonymous visitors are sent back to the login screen.
func RequireSession(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := SessionUserID(session)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		principal, err := resolver.Principal(userID)
		if err != nil {
			if apierrors.KindOf(err) != apierrors.KindUnauthenticated {
				log.Error().Err(err).Msg("failed to resolve session user")
				c.String(http.StatusInternalServerError, "Internal server error")
				c.Abort()
				return
			}
			session.Clear()
			_ = session.Save()
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireToken authenticates API calls with a bearer access token.
func RequireToken(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		principal, err := resolver.PrincipalFromToken(token)
		if err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// SessionUserID reads the logged-in account id from the session.
func SessionUserID(session sessions.Session) (uint64, bool) {
	switch v := session.Get(constants.SessionKeyUserID).(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetPrincipal retrieves the current caller from context
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil
	}
	principal, _ := v.(*auth.Principal)
	return principal
}
