// Package testutil holds fixtures shared by the service and handler tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-report-api/internal/database"
	"github.com/yukikurage/task-report-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with the schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.Options(gormlogger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	database.SetDB(db)

	return db
}

// CreateUser inserts an active account whose password is "password".
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role, assignedAdmin *models.User) *models.User {
	t.Helper()
	return CreateUserWithPassword(t, db, email, "password", role, assignedAdmin)
}

// CreateUserWithPassword inserts an active account with the given password.
func CreateUserWithPassword(t *testing.T, db *gorm.DB, email, password string, role models.Role, assignedAdmin *models.User) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        models.NormalizeEmail(email),
		FirstName:    strings.Split(email, "@")[0],
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if role == models.RoleSuperAdmin {
		user.IsStaff = true
		user.IsSuperuser = true
	}
	if assignedAdmin != nil {
		user.AssignedAdminID = &assignedAdmin.ID
	}
	require.NoError(t, db.Omit("AssignedAdmin").Create(user).Error)
	return user
}

// CreateTask inserts a task due tomorrow.
func CreateTask(t *testing.T, db *gorm.DB, title string, assignee *models.User, status models.TaskStatus) *models.Task {
	t.Helper()

	task := &models.Task{
		Description: "Test Description",
		AssigneeID:  assignee.ID,
		DueDate:     Today().AddDate(0, 0, 1),
		Status:      status,
	}
	task.SetTitle(title)
	require.NoError(t, db.Omit("Assignee").Create(task).Error)
	return task
}

// Today is the current local date at midnight UTC, the representation used
// for due dates.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
