package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/constants"
	"github.com/yukikurage/task-report-api/internal/services"
)

// LoginPage shows the console login form.
func (h *ConsoleHandler) LoginPage(c *gin.Context) {
	render(c, "login.html", "Login", nil)
}

// Login authenticates an admin and opens a console session.
func (h *ConsoleHandler) Login(c *gin.Context) {
	user, err := h.authService.ConsoleLogin(services.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		fail(c, err, "/")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.SessionKeyUserID, user.ID)

	if user.IsSuperAdmin() {
		redirect(c, "/manage_users/")
		return
	}
	redirect(c, "/assigned_users/")
}

// Logout removes the console session.
func (h *ConsoleHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	redirect(c, "/")
}
