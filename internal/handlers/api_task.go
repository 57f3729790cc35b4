package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/dto"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/services"
	"github.com/yukikurage/task-report-api/internal/utils"
)

// TaskHandler serves the task endpoints of the API.
type TaskHandler struct {
	taskService   *services.TaskService
	reportService *services.ReportService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, reportService *services.ReportService) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		reportService: reportService,
	}
}

// ListTasks returns every task assigned to the caller
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, _, err := h.taskService.List(middleware.GetPrincipal(c), utils.PaginationParams{})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, "Tasks retrieved successfully", dto.ToTaskDTOs(tasks))
}

// UpdateStatus changes the status of one of the caller's tasks
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(middleware.GetPrincipal(c), middleware.GetTaskID(c), services.StatusInput{
		Status:           req.Status,
		CompletionReport: req.CompletionReport,
		WorkedHours:      string(req.WorkedHours),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, "Task status updated successfully", dto.ToTaskDTO(*task))
}

// GetReport returns the completion report of a task
func (h *TaskHandler) GetReport(c *gin.Context) {
	task, err := h.reportService.GetReport(middleware.GetPrincipal(c), middleware.GetTaskID(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, "Task report retrieved successfully", dto.ToTaskDTO(*task))
}
