package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/testutil"
)

func validCreateInput() CreateUserInput {
	return CreateUserInput{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "Jane@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "user",
	}
}

func TestUserService_CreateValidation(t *testing.T) {
	env := setupServiceEnv(t)
	root := principal(env.superAdmin)

	tests := []struct {
		name    string
		mutate  func(*CreateUserInput)
		wantErr error
	}{
		{"missing first name", func(in *CreateUserInput) { in.FirstName = " " }, ErrRequiredFields},
		{"missing confirm", func(in *CreateUserInput) { in.ConfirmPassword = "" }, ErrRequiredFields},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"super admin role", func(in *CreateUserInput) { in.Role = "super_admin" }, ErrInvalidRole},
		{"unknown role", func(in *CreateUserInput) { in.Role = "owner" }, ErrInvalidRole},
		{"password mismatch", func(in *CreateUserInput) { in.ConfirmPassword = "other" }, ErrPasswordMismatch},
		{"email taken in other case", func(in *CreateUserInput) { in.Email = "USER@example.com" }, ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)
			_, err := env.userService.Create(root, input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_CreateRequiresSuperAdmin(t *testing.T) {
	env := setupServiceEnv(t)

	_, err := env.userService.Create(principal(env.admin), validCreateInput())
	require.ErrorIs(t, err, auth.ErrPermissionDenied)

	_, err = env.userService.Create(nil, validCreateInput())
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestUserService_CreateWithAdmin(t *testing.T) {
	env := setupServiceEnv(t)

	input := validCreateInput()
	input.AssignedAdminID = strconv.FormatUint(env.admin.ID, 10)

	result, err := env.userService.Create(principal(env.superAdmin), input)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	saved := env.reloadUser(t, result.User.ID)
	assert.Equal(t, "jane@example.com", saved.Email)
	assert.Equal(t, models.RoleUser, saved.Role)
	assert.True(t, saved.IsActive)
	require.NotNil(t, saved.AssignedAdminID)
	assert.Equal(t, env.admin.ID, *saved.AssignedAdminID)
}

func TestUserService_CreateWithUnknownAdminWarns(t *testing.T) {
	env := setupServiceEnv(t)

	input := validCreateInput()
	input.AssignedAdminID = strconv.FormatUint(env.user.ID, 10)

	result, err := env.userService.Create(principal(env.superAdmin), input)
	require.NoError(t, err)
	assert.Equal(t, []string{WarnAdminNotFoundOnCreate}, result.Warnings)
	assert.Nil(t, env.reloadUser(t, result.User.ID).AssignedAdminID)
}

func TestUserService_CreateAdminIgnoresAssignedAdmin(t *testing.T) {
	env := setupServiceEnv(t)

	input := validCreateInput()
	input.Role = "admin"
	input.AssignedAdminID = strconv.FormatUint(env.admin.ID, 10)

	result, err := env.userService.Create(principal(env.superAdmin), input)
	require.NoError(t, err)
	assert.Nil(t, env.reloadUser(t, result.User.ID).AssignedAdminID)
}

func TestUserService_UpdateDemotionCascades(t *testing.T) {
	env := setupServiceEnv(t)

	result, err := env.userService.Update(principal(env.superAdmin), UpdateUserInput{
		ID:        strconv.FormatUint(env.admin.ID, 10),
		FirstName: "Former",
		Email:     "admin@example.com",
		Role:      "user",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, models.RoleUser, env.reloadUser(t, env.admin.ID).Role)
	assert.Nil(t, env.reloadUser(t, env.user.ID).AssignedAdminID)
}

func TestUserService_UpdateAssignsAndClearsAdmin(t *testing.T) {
	env := setupServiceEnv(t)
	root := principal(env.superAdmin)
	other := testutil.CreateUser(t, env.db, "other-admin@example.com", models.RoleAdmin, nil)

	input := UpdateUserInput{
		ID:              strconv.FormatUint(env.user.ID, 10),
		FirstName:       "Moved",
		LastName:        "User",
		Email:           "user@example.com",
		Role:            "user",
		AssignedAdminID: strconv.FormatUint(other.ID, 10),
	}
	_, err := env.userService.Update(root, input)
	require.NoError(t, err)
	saved := env.reloadUser(t, env.user.ID)
	require.NotNil(t, saved.AssignedAdminID)
	assert.Equal(t, other.ID, *saved.AssignedAdminID)
	assert.Equal(t, "Moved User", saved.Title())

	input.AssignedAdminID = "999999"
	result, err := env.userService.Update(root, input)
	require.NoError(t, err)
	assert.Equal(t, []string{WarnAdminNotFoundOnUpdate}, result.Warnings)
	assert.Nil(t, env.reloadUser(t, env.user.ID).AssignedAdminID)

	input.AssignedAdminID = strconv.FormatUint(other.ID, 10)
	input.Role = "admin"
	_, err = env.userService.Update(root, input)
	require.NoError(t, err)
	saved = env.reloadUser(t, env.user.ID)
	assert.Equal(t, models.RoleAdmin, saved.Role)
	assert.Nil(t, saved.AssignedAdminID)
}

func TestUserService_UpdateErrors(t *testing.T) {
	env := setupServiceEnv(t)
	root := principal(env.superAdmin)

	_, err := env.userService.Update(root, UpdateUserInput{})
	require.ErrorIs(t, err, ErrUserIDRequired)

	_, err = env.userService.Update(root, UpdateUserInput{ID: "424242", FirstName: "x", Email: "x@example.com", Role: "user"})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.userService.Update(root, UpdateUserInput{
		ID:        strconv.FormatUint(env.user.ID, 10),
		FirstName: "User",
		Email:     "Admin@Example.com",
		Role:      "user",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "user@example.com", env.reloadUser(t, env.user.ID).Email)
}

func TestUserService_DeleteCascadesTasks(t *testing.T) {
	env := setupServiceEnv(t)
	root := principal(env.superAdmin)
	task := testutil.CreateTask(t, env.db, "Write report", env.user, models.TaskStatusPending)
	managed := testutil.CreateUser(t, env.db, "managed@example.com", models.RoleUser, env.admin)

	require.NoError(t, env.userService.Delete(root, strconv.FormatUint(env.user.ID, 10)))
	_, err := env.taskRepo.FindByID(task.ID)
	require.Error(t, err)

	require.NoError(t, env.userService.Delete(root, strconv.FormatUint(env.admin.ID, 10)))
	assert.Nil(t, env.reloadUser(t, managed.ID).AssignedAdminID)

	require.ErrorIs(t, env.userService.Delete(root, ""), ErrUserIDRequired)
	require.ErrorIs(t, env.userService.Delete(root, strconv.FormatUint(env.user.ID, 10)), ErrUserNotFound)
}

func TestUserService_Listings(t *testing.T) {
	env := setupServiceEnv(t)
	testutil.CreateUser(t, env.db, "unmanaged@example.com", models.RoleUser, nil)

	dir, err := env.userService.ListForAssignment(principal(env.superAdmin))
	require.NoError(t, err)
	emails := make([]string, 0, len(dir.Users))
	for _, u := range dir.Users {
		emails = append(emails, u.Email)
	}
	assert.Equal(t, []string{"admin@example.com", "unmanaged@example.com", "user@example.com"}, emails)
	require.Len(t, dir.Admins, 1)
	assert.Equal(t, env.admin.ID, dir.Admins[0].ID)
	assert.Equal(t, []models.Role{models.RoleUser, models.RoleAdmin}, dir.Roles)

	assigned, err := env.userService.AssignedUsers(principal(env.admin))
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, env.user.ID, assigned[0].ID)

	_, err = env.userService.AssignedUsers(principal(env.superAdmin))
	require.ErrorIs(t, err, auth.ErrPermissionDenied)
}

func TestUserService_CreateSuperAdmin(t *testing.T) {
	env := setupServiceEnv(t)

	user, err := env.userService.CreateSuperAdmin(SuperAdminInput{
		Email:     "Boss@Example.com",
		FirstName: "Boss",
		Password:  "changeme",
	})
	require.NoError(t, err)
	assert.True(t, user.IsSuperAdmin())
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)

	logged, err := env.authService.ConsoleLogin(LoginInput{Email: "boss@example.com", Password: "changeme"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = env.userService.CreateSuperAdmin(SuperAdminInput{Email: "boss@example.com", FirstName: "Boss", Password: "x"})
	require.ErrorIs(t, err, ErrEmailTaken)
}
