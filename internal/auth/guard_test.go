package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-report-api/internal/models"
)

func TestPermits(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		want    bool
	}{
		{"super admin on admin route", models.RoleSuperAdmin, []models.Role{models.RoleSuperAdmin, models.RoleAdmin}, true},
		{"admin on super admin route", models.RoleAdmin, []models.Role{models.RoleSuperAdmin}, false},
		{"user on user route", models.RoleUser, []models.Role{models.RoleUser}, true},
		{"user on admin route", models.RoleUser, []models.Role{models.RoleSuperAdmin, models.RoleAdmin}, false},
		{"no role", "", []models.Role{models.RoleUser}, false},
		{"unknown role listed", models.Role("root"), []models.Role{models.Role("root")}, false},
		{"empty allow list", models.RoleSuperAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Permits(tt.role, tt.allowed...))
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Principal{ID: 1, Role: models.RoleAdmin, Active: true}

	assert.NoError(t, Authorize(admin, models.RoleAdmin))
	assert.ErrorIs(t, Authorize(admin, models.RoleSuperAdmin), ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(nil, models.RoleAdmin), ErrNotAuthenticated)

	inactive := &Principal{ID: 2, Role: models.RoleAdmin}
	assert.ErrorIs(t, Authorize(inactive, models.RoleAdmin), ErrNotAuthenticated)
}
