package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/constants"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/services"
)

const manageUsersPath = "/manage_users/"

// ManageUsers lists the accounts a super-admin manages.
func (h *ConsoleHandler) ManageUsers(c *gin.Context) {
	dir, err := h.userService.ListForAssignment(middleware.GetPrincipal(c))
	if err != nil {
		pageError(c, err)
		return
	}

	render(c, "manage_users.html", "Manage users", gin.H{
		"Users":  dir.Users,
		"Admins": dir.Admins,
		"Roles":  dir.Roles,
	})
}

// AddUser creates an account from the add-user form.
func (h *ConsoleHandler) AddUser(c *gin.Context) {
	result, err := h.userService.Create(middleware.GetPrincipal(c), services.CreateUserInput{
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Role:            c.PostForm("role"),
		AssignedAdminID: c.PostForm("assigned_admin"),
	})
	if err != nil {
		fail(c, err, manageUsersPath)
		return
	}

	for _, warning := range result.Warnings {
		addFlash(c, constants.FlashWarning, warning)
	}
	succeed(c, "User created successfully", manageUsersPath)
}

// UpdateUser applies the update-user form.
func (h *ConsoleHandler) UpdateUser(c *gin.Context) {
	result, err := h.userService.Update(middleware.GetPrincipal(c), services.UpdateUserInput{
		ID:              c.PostForm("user_id"),
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		Email:           c.PostForm("email"),
		Role:            c.PostForm("role"),
		AssignedAdminID: c.PostForm("assigned_admin"),
	})
	if err != nil {
		fail(c, err, manageUsersPath)
		return
	}

	for _, warning := range result.Warnings {
		addFlash(c, constants.FlashWarning, warning)
	}
	succeed(c, "User updated successfully", manageUsersPath)
}

// DeleteUser removes an account and its tasks.
func (h *ConsoleHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(middleware.GetPrincipal(c), c.PostForm("user_id")); err != nil {
		fail(c, err, manageUsersPath)
		return
	}
	succeed(c, "User deleted successfully", manageUsersPath)
}

// AssignedUsers lists the users managed by the calling admin.
func (h *ConsoleHandler) AssignedUsers(c *gin.Context) {
	users, err := h.userService.AssignedUsers(middleware.GetPrincipal(c))
	if err != nil {
		pageError(c, err)
		return
	}

	render(c, "assigned_users.html", "Assigned users", gin.H{"Users": users})
}
