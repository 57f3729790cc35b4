package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-report-api/internal/auth"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/utils"
	"gorm.io/gorm"
)

var ErrTaskNotCompleted = apierrors.Validation("Task is not completed")

// ReportService exposes completed tasks to admins and super-admins.
type ReportService struct {
	taskRepo repository.TaskRepository
}

// NewReportService creates a new ReportService
func NewReportService(taskRepo repository.TaskRepository) *ReportService {
	return &ReportService{taskRepo: taskRepo}
}

// ListCompleted returns completed tasks in the caller's scope, most
// recently updated first.
func (s *ReportService) ListCompleted(p *auth.Principal, params utils.PaginationParams) ([]models.Task, int64, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return nil, 0, err
	}

	completed := models.TaskStatusCompleted
	filter := scopeFilter(p)
	filter.Status = &completed
	filter.SortByUpdated = true
	filter.Pagination = params

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return tasks, total, nil
}

// GetReport returns a single completed task.
func (s *ReportService) GetReport(p *auth.Principal, taskID uint64) (*models.Task, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTaskWithID
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !inScope(p, task) {
		return nil, ErrNoTaskWithID
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	return task, nil
}
