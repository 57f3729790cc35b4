package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/constants"
	apierrors "github.com/yukikurage/task-report-api/internal/errors"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidStatus          = apierrors.Validation("Invalid status value")
	ErrStatusRequired         = apierrors.Validation("Status is required")
	ErrInvalidDueDate         = apierrors.Validation("Invalid due date format, expected YYYY-MM-DD")
	ErrDueDateInPast          = apierrors.Validation("Due date cannot be in the past")
	ErrTaskTitleTaken         = apierrors.Conflict("Task with this title already exists. Please use a different title")
	ErrAssigneeNotFound       = apierrors.NotFound("Assigning user not found")
	ErrTaskIDRequired         = apierrors.Validation("Task ID not provided")
	ErrTaskNotFound           = apierrors.NotFound("Task not found")
	ErrNoTaskWithID           = apierrors.NotFound("No task found with this ID")
	ErrCompletedIsTerminal    = apierrors.Validation("A completed task cannot be reverted to previous status")
	ErrCompletionRequired     = apierrors.Validation("Completion report and worked hours are required when marking task as completed")
	ErrWorkedHoursInvalid     = apierrors.Validation("Worked hours must be a valid number")
	ErrWorkedHoursNotPositive = apierrors.Validation("Worked hours must be greater than 0")
	ErrWorkedHoursTooLarge    = apierrors.Validation("Worked hours must not exceed 999.99")
)

var maxWorkedHours = decimal.RequireFromString("999.99")

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// TaskInput carries the raw values of the task form.
type TaskInput struct {
	Title            string
	Description      string
	AssigneeID       string
	DueDate          string
	Status           string
	CompletionReport string
	WorkedHours      string
}

// UpdateTaskInput identifies the task being rewritten.
type UpdateTaskInput struct {
	ID string
	TaskInput
}

// StatusInput is the body of a status change made by the assignee.
type StatusInput struct {
	Status           string
	CompletionReport string
	WorkedHours      string
}

// Create adds a task for a user account.
func (s *TaskService) Create(p *auth.Principal, input TaskInput) (*models.Task, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !input.complete() {
		return nil, ErrRequiredFields
	}

	if err := s.ensureTitleFree(input.Title, 0); err != nil {
		return nil, err
	}
	status, ok := models.ParseTaskStatus(input.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	dueDate, err := s.parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	assignee, err := s.assignee(p, input.AssigneeID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Description: strings.TrimSpace(input.Description),
		AssigneeID:  assignee.ID,
		DueDate:     dueDate,
	}
	task.SetTitle(input.Title)
	if err := applyStatus(task, status, input.CompletionReport, input.WorkedHours); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTaskTitleTaken
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.Assignee = *assignee

	return task, nil
}

// Update overwrites every editable field of a task.
func (s *TaskService) Update(p *auth.Principal, input UpdateTaskInput) (*models.Task, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ID) == "" || !input.complete() {
		return nil, ErrRequiredFields
	}

	task, err := s.scopedTask(p, input.ID)
	if err != nil {
		return nil, err
	}
	status, ok := models.ParseTaskStatus(input.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	assignee, err := s.assignee(p, input.AssigneeID)
	if err != nil {
		return nil, err
	}
	dueDate, err := s.parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(status) {
		return nil, ErrCompletedIsTerminal
	}
	if err := s.ensureTitleFree(input.Title, task.ID); err != nil {
		return nil, err
	}
	if err := applyStatus(task, status, input.CompletionReport, input.WorkedHours); err != nil {
		return nil, err
	}

	task.SetTitle(input.Title)
	task.Description = strings.TrimSpace(input.Description)
	task.AssigneeID = assignee.ID
	task.Assignee = *assignee
	task.DueDate = dueDate

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTaskTitleTaken
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateStatus lets the assignee move a task through its workflow.
func (s *TaskService) UpdateStatus(p *auth.Principal, taskID uint64, input StatusInput) (*models.Task, error) {
	if err := auth.Authorize(p, models.RoleUser); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Status) == "" {
		return nil, ErrStatusRequired
	}
	status, ok := models.ParseTaskStatus(input.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByID(taskID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTaskWithID
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.AssigneeID != p.ID {
		return nil, ErrNoTaskWithID
	}
	if !task.Status.CanTransitionTo(status) {
		return nil, ErrCompletedIsTerminal
	}
	if err := applyStatus(task, status, input.CompletionReport, input.WorkedHours); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// Delete removes a task within the caller's scope.
func (s *TaskService) Delete(p *auth.Principal, id string) error {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrTaskIDRequired
	}

	task, err := s.scopedTask(p, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// List returns the tasks visible to the caller, newest first.
func (s *TaskService) List(p *auth.Principal, params utils.PaginationParams) ([]models.Task, int64, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin, models.RoleUser); err != nil {
		return nil, 0, err
	}

	filter := scopeFilter(p)
	filter.Pagination = params

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// AssignableUsers lists the accounts the caller may assign tasks to.
func (s *TaskService) AssignableUsers(p *auth.Principal) ([]models.User, error) {
	if err := auth.Authorize(p, models.RoleSuperAdmin, models.RoleAdmin); err != nil {
		return nil, err
	}

	role := models.RoleUser
	filter := repository.UserFilter{Role: &role}
	if p.IsAdmin() {
		filter.AssignedAdminID = &p.ID
	}

	users, err := s.userRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignable users: %w", err)
	}
	return users, nil
}

func (in TaskInput) complete() bool {
	for _, v := range []string{in.Title, in.Description, in.AssigneeID, in.DueDate, in.Status} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// scopeFilter restricts listings to what the caller may see.
func scopeFilter(p *auth.Principal) repository.TaskFilter {
	var filter repository.TaskFilter
	switch {
	case p.IsAdmin():
		filter.AssignedAdminID = &p.ID
	case p.IsUser():
		filter.AssigneeID = &p.ID
	}
	return filter
}

// scopedTask loads a task, hiding tasks outside an admin's managed users.
func (s *TaskService) scopedTask(p *auth.Principal, rawID string) (*models.Task, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.FindByID(id, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !inScope(p, task) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func inScope(p *auth.Principal, task *models.Task) bool {
	switch {
	case p.IsSuperAdmin():
		return true
	case p.IsAdmin():
		return task.Assignee.AssignedAdminID != nil && *task.Assignee.AssignedAdminID == p.ID
	default:
		return task.AssigneeID == p.ID
	}
}

func (s *TaskService) assignee(p *auth.Principal, rawID string) (*models.User, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return nil, ErrAssigneeNotFound
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	if !user.IsUser() {
		return nil, ErrAssigneeNotFound
	}
	if p.IsAdmin() && (user.AssignedAdminID == nil || *user.AssignedAdminID != p.ID) {
		return nil, ErrAssigneeNotFound
	}
	return user, nil
}

// parseDueDate reads a calendar date and rejects days before today.
func (s *TaskService) parseDueDate(raw string) (time.Time, error) {
	due, err := time.ParseInLocation(constants.DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return time.Time{}, ErrDueDateInPast
	}
	return due, nil
}

func (s *TaskService) ensureTitleFree(title string, excludeID uint64) error {
	taken, err := s.taskRepo.TitleTaken(title, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check task title: %w", err)
	}
	if taken {
		return ErrTaskTitleTaken
	}
	return nil
}

// applyStatus sets the status and keeps the completion fields present
// exactly when the task is completed.
func applyStatus(task *models.Task, status models.TaskStatus, report, hours string) error {
	if status != models.TaskStatusCompleted {
		task.ClearCompletion(status)
		return nil
	}

	report = strings.TrimSpace(report)
	hours = strings.TrimSpace(hours)
	if report == "" || hours == "" {
		return ErrCompletionRequired
	}

	worked, err := ParseWorkedHours(hours)
	if err != nil {
		return err
	}

	task.Complete(report, worked)
	return nil
}

// ParseWorkedHours parses a positive amount of hours rounded to two decimals.
func ParseWorkedHours(raw string) (decimal.Decimal, error) {
	worked, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ErrWorkedHoursInvalid
	}

	worked = worked.Round(2)
	if !worked.IsPositive() {
		return decimal.Decimal{}, ErrWorkedHoursNotPositive
	}
	if worked.GreaterThan(maxWorkedHours) {
		return decimal.Decimal{}, ErrWorkedHoursTooLarge
	}
	return worked, nil
}
