package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-report-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrDeleteUserTasks is returned when removing a user's tasks fails inside the delete transaction.
	ErrDeleteUserTasks = errors.New("user repository: delete tasks failed")
	// ErrUnassignDependents is returned when clearing assigned admin references fails.
	ErrUnassignDependents = errors.New("user repository: unassign dependent users failed")
	// ErrDeleteUser is returned when deleting the account row fails.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken checks the email against every other account
func (r *GormUserRepository) EmailTaken(email string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("email = ?", models.NormalizeEmail(email))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists users matching the filter
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{}).Preload("AssignedAdmin")

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.AssignedAdminID != nil {
		query = query.Where("assigned_admin_id = ?", *filter.AssignedAdminID)
	}
	if filter.ExcludeID != nil {
		query = query.Where("id <> ?", *filter.ExcludeID)
	}
	if filter.ExcludeSuperusers {
		query = query.Where("is_superuser = ?", false)
	}

	users := []models.User{}
	if err := query.Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves the user and optionally cascades the admin unassignment
func (r *GormUserRepository) Update(user *models.User, unassignDependents bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}

		if unassignDependents {
			if err := unassignFrom(tx, user.ID); err != nil {
				return fmt.Errorf("%w: %v", ErrUnassignDependents, err)
			}
		}

		return nil
	})
}

// Delete deletes a user and all related data in a transaction
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignee_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUserTasks, err)
		}

		if err := unassignFrom(tx, id); err != nil {
			return fmt.Errorf("%w: %v", ErrUnassignDependents, err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUser, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func unassignFrom(tx *gorm.DB, adminID uint64) error {
	return tx.Model(&models.User{}).
		Where("assigned_admin_id = ?", adminID).
		Update("assigned_admin_id", nil).Error
}
