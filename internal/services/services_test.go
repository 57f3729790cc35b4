package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	tokens      *auth.TokenIssuer
	authService *AuthService
	userService *UserService
	taskService *TaskService
	reports     *ReportService

	superAdmin *models.User
	admin      *models.User
	user       *models.User
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenIssuer("test-secret", "test", 5*time.Minute, time.Hour)

	userService := NewUserService(userRepo)
	userService.bcryptCost = bcrypt.MinCost

	env := serviceEnv{
		db:          db,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		tokens:      tokens,
		authService: NewAuthService(userRepo, tokens),
		userService: userService,
		taskService: NewTaskService(taskRepo, userRepo),
		reports:     NewReportService(taskRepo),
	}

	env.superAdmin = testutil.CreateUser(t, db, "root@example.com", models.RoleSuperAdmin, nil)
	env.admin = testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin, nil)
	env.user = testutil.CreateUser(t, db, "user@example.com", models.RoleUser, env.admin)

	return env
}

func principal(u *models.User) *auth.Principal {
	return auth.NewPrincipal(u)
}

func (env serviceEnv) reloadUser(t *testing.T, id uint64) *models.User {
	t.Helper()
	user, err := env.userRepo.FindByID(id)
	require.NoError(t, err)
	return user
}

func (env serviceEnv) reloadTask(t *testing.T, id uint64) *models.Task {
	t.Helper()
	task, err := env.taskRepo.FindByID(id)
	require.NoError(t, err)
	return task
}

func tomorrow() string {
	return testutil.Today().AddDate(0, 0, 1).Format("2006-01-02")
}
