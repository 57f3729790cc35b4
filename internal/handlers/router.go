package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/services"
)

// Services bundles what the HTTP surfaces depend on.
type Services struct {
	Auth    *services.AuthService
	Users   *services.UserService
	Tasks   *services.TaskService
	Reports *services.ReportService
}

// RegisterRoutes mounts the console, the API and the health check. The
// session middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, svc Services) error {
	if err := LoadTemplates(r); err != nil {
		return err
	}

	authHandler := NewAuthHandler(svc.Auth)
	taskHandler := NewTaskHandler(svc.Tasks, svc.Reports)
	console := NewConsoleHandler(svc.Auth, svc.Users, svc.Tasks, svc.Reports)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Report API is running",
		})
	})

	// Console routes
	r.GET("/", console.LoginPage)
	r.POST("/", console.Login)
	r.POST("/admin_logout/", console.Logout)

	signedIn := r.Group("/", middleware.RequireSession(svc.Auth))
	{
		superAdmin := signedIn.Group("/", middleware.ConsoleRoles(models.RoleSuperAdmin))
		superAdmin.GET("/manage_users/", console.ManageUsers)
		superAdmin.POST("/add_user/", console.AddUser)
		superAdmin.POST("/update_user/", console.UpdateUser)
		superAdmin.POST("/delete_user/", console.DeleteUser)

		admin := signedIn.Group("/", middleware.ConsoleRoles(models.RoleAdmin))
		admin.GET("/assigned_users/", console.AssignedUsers)

		staff := signedIn.Group("/", middleware.ConsoleRoles(models.RoleSuperAdmin, models.RoleAdmin))
		staff.GET("/manage_tasks/", console.ManageTasks)
		staff.POST("/add_task/", console.AddTask)
		staff.POST("/update_task/", console.UpdateTask)
		staff.POST("/delete_task/", console.DeleteTask)
		staff.GET("/task_reports/", console.TaskReports)
	}

	// API routes
	api := r.Group("/api")
	{
		api.POST("/Login/", authHandler.Login)
		api.POST("/token/refresh/", authHandler.Refresh)

		tasks := api.Group("/tasks", middleware.RequireToken(svc.Auth))
		{
			tasks.GET("/", middleware.AllowRoles("You are not a user", models.RoleUser), taskHandler.ListTasks)
			tasks.PUT("/:id/",
				middleware.AllowRoles("You are not a user", models.RoleUser),
				middleware.RequireTaskID(),
				taskHandler.UpdateStatus,
			)
			tasks.GET("/:id/report/",
				middleware.AllowRoles("You are not an admin", models.RoleAdmin, models.RoleSuperAdmin),
				middleware.RequireTaskID(),
				taskHandler.GetReport,
			)
		}
	}

	return nil
}
