package models

// Role determines what an account may do. Authority order is
// super_admin > admin > user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole returns the canonical role for s.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// AssignableRoles are the roles the console may grant to an account.
var AssignableRoles = []Role{RoleUser, RoleAdmin}

// Label returns the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Admin"
	case RoleSuperAdmin:
		return "SuperAdmin"
	default:
		return string(r)
	}
}
