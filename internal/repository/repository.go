package repository

import (
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// TitleTaken reports whether another task already uses the title,
	// ignoring case. excludeID skips the task being updated.
	TitleTaken(title string, excludeID uint64) (bool, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// AssigneeID restricts to tasks assigned to one user.
	AssigneeID *uint64
	// AssignedAdminID restricts to tasks whose assignee is managed by an admin.
	AssignedAdminID *uint64
	Status          *models.TaskStatus
	// SortByUpdated orders by last update instead of creation, newest first.
	SortByUpdated bool
	Pagination    utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// EmailTaken reports whether an account other than excludeID uses email.
	EmailTaken(email string, excludeID uint64) (bool, error)

	// List lists users matching the filter, ordered by email
	List(filter UserFilter) ([]models.User, error)

	// Update saves a user. When unassignDependents is set, every account
	// assigned to this user loses its assigned admin in the same transaction.
	Update(user *models.User, unassignDependents bool) error

	// Delete removes a user, the tasks assigned to them and every reference
	// to them as assigned admin, atomically.
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role              *models.Role
	AssignedAdminID   *uint64
	ExcludeID         *uint64
	ExcludeSuperusers bool
}
