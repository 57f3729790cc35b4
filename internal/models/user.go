package models

import (
	"strings"
	"time"
)

type User struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName       string    `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(30)" json:"last_name"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	Role            Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff         bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser     bool      `gorm:"not null;default:false" json:"is_superuser"`
	AssignedAdminID *uint64   `gorm:"index" json:"assigned_admin_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	AssignedAdmin *User `gorm:"foreignKey:AssignedAdminID;constraint:OnDelete:SET NULL" json:"assigned_admin,omitempty"`
}

func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsUser() bool { return u.Role == RoleUser }

// Title is the display name: "first last", or just the first name.
func (u *User) Title() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// NormalizeEmail trims and lower-cases an address so that uniqueness holds
// regardless of case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
