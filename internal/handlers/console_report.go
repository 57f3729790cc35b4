package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-report-api/internal/middleware"
	"github.com/yukikurage/task-report-api/internal/utils"
)

// TaskReports lists completed tasks, most recently updated first.
func (h *ConsoleHandler) TaskReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.reportService.ListCompleted(middleware.GetPrincipal(c), params)
	if err != nil {
		pageError(c, err)
		return
	}

	render(c, "task_reports.html", "Task reports", gin.H{
		"Tasks":      tasks,
		"Pagination": utils.NewPaginationResponse(params, total),
	})
}
