package auth

import (
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
)

var (
	ErrNotAuthenticated = apierrors.Unauthenticated("Authentication credentials were not provided or are invalid")
	ErrPermissionDenied = apierrors.PermissionDenied("Permission denied")
)

// Permits reports whether role is in the allow-list. Unknown and empty roles
// are never permitted.
func Permits(role models.Role, allowed ...models.Role) bool {
	if _, ok := models.ParseRole(string(role)); !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize checks an operation's allow-list against the caller.
func Authorize(p *Principal, allowed ...models.Role) error {
	if p == nil || !p.Active {
		return ErrNotAuthenticated
	}
	if !Permits(p.Role, allowed...) {
		return ErrPermissionDenied
	}
	return nil
}
