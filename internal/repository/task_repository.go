package repository

import (
	"github.com/yukikurage/task-report-api/internal/database"
	"github.com/yukikurage/task-report-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	task.TitleKey = models.TitleKey(task.Title)
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// TitleTaken checks the case-insensitive title against every other task
func (r *GormTaskRepository) TitleTaken(title string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.Task{}).Where("title_key = ?", models.TitleKey(title))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{})

	// Apply filters
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.AssignedAdminID != nil {
		managedUsers := r.db.Model(&models.User{}).
			Select("id").
			Where("assigned_admin_id = ?", *filter.AssignedAdminID)
		query = query.Where("tasks.assignee_id IN (?)", managedUsers)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByUpdated {
		listQuery = listQuery.Order("tasks.updated_at DESC").Order("tasks.id DESC")
	} else {
		listQuery = listQuery.Order("tasks.created_at DESC").Order("tasks.id DESC")
	}

	tasks := []models.Task{}
	if err := listQuery.
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Assignee").
		Preload("Assignee.AssignedAdmin").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	task.TitleKey = models.TitleKey(task.Title)
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
