package auth

import "github.com/yukikurage/task-report-api/internal/models"

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID     uint64
	Email  string
	Role   models.Role
	Active bool
}

// NewPrincipal builds the principal for a stored account.
func NewPrincipal(user *models.User) *Principal {
	return &Principal{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Active: user.IsActive,
	}
}

func (p *Principal) IsSuperAdmin() bool { return p != nil && p.Role == models.RoleSuperAdmin }

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == models.RoleAdmin }

func (p *Principal) IsUser() bool { return p != nil && p.Role == models.RoleUser }
