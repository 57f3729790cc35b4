package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/services"
	"github.com/yukikurage/task-report-api/internal/utils"
)

const manageTasksPath = "/manage_tasks/"

// ManageTasks lists the caller's tasks with the assignment choices.
func (h *ConsoleHandler) ManageTasks(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.List(principal, params)
	if err != nil {
		pageError(c, err)
		return
	}
	users, err := h.taskService.AssignableUsers(principal)
	if err != nil {
		pageError(c, err)
		return
	}

	render(c, "manage_tasks.html", "Manage tasks", gin.H{
		"Tasks":      tasks,
		"Users":      users,
		"Statuses":   models.TaskStatuses,
		"Pagination": utils.NewPaginationResponse(params, total),
	})
}

func taskForm(c *gin.Context) services.TaskInput {
	return services.TaskInput{
		Title:            c.PostForm("title"),
		Description:      c.PostForm("description"),
		AssigneeID:       c.PostForm("assigned_to"),
		DueDate:          c.PostForm("due_date"),
		Status:           c.PostForm("status"),
		CompletionReport: c.PostForm("completion_report"),
		WorkedHours:      c.PostForm("worked_hours"),
	}
}

// AddTask creates a task from the add-task form.
func (h *ConsoleHandler) AddTask(c *gin.Context) {
	if _, err := h.taskService.Create(middleware.GetPrincipal(c), taskForm(c)); err != nil {
		fail(c, err, manageTasksPath)
		return
	}
	succeed(c, "Task created successfully", manageTasksPath)
}

// UpdateTask applies the update-task form.
func (h *ConsoleHandler) UpdateTask(c *gin.Context) {
	input := services.UpdateTaskInput{
		ID:        c.PostForm("task_id"),
		TaskInput: taskForm(c),
	}
	if _, err := h.taskService.Update(middleware.GetPrincipal(c), input); err != nil {
		fail(c, err, manageTasksPath)
		return
	}
	succeed(c, "Task updated successfully", manageTasksPath)
}

// DeleteTask removes a task.
func (h *ConsoleHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(middleware.GetPrincipal(c), c.PostForm("task_id")); err != nil {
		fail(c, err, manageTasksPath)
		return
	}
	succeed(c, "Task deleted successfully", manageTasksPath)
}
