package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/testutil"
	"github.com/yukikurage/task-report-api/internal/utils"
)

func completeTask(t *testing.T, env serviceEnv, task *models.Task, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, env.db.Model(task).UpdateColumns(map[string]any{
		"status":            models.TaskStatusCompleted,
		"completion_report": "done",
		"worked_hours":      "1.25",
		"updated_at":        updatedAt,
	}).Error)
}

func TestReportService_ListCompleted(t *testing.T) {
	env := setupServiceEnv(t)
	stranger := testutil.CreateUser(t, env.db, "stranger@example.com", models.RoleUser, nil)

	older := testutil.CreateTask(t, env.db, "Older", env.user, models.TaskStatusPending)
	newer := testutil.CreateTask(t, env.db, "Newer", env.user, models.TaskStatusPending)
	foreign := testutil.CreateTask(t, env.db, "Foreign", stranger, models.TaskStatusPending)
	testutil.CreateTask(t, env.db, "Open", env.user, models.TaskStatusInProgress)

	base := time.Now().Add(-time.Hour)
	completeTask(t, env, older, base)
	completeTask(t, env, newer, base.Add(10*time.Minute))
	completeTask(t, env, foreign, base.Add(20*time.Minute))

	tasks, total, err := env.reports.ListCompleted(principal(env.admin), utils.PaginationParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, tasks, 2)
	assert.Equal(t, newer.ID, tasks[0].ID)
	assert.Equal(t, older.ID, tasks[1].ID)
	assert.Equal(t, env.user.Email, tasks[0].Assignee.Email)

	tasks, total, err = env.reports.ListCompleted(principal(env.superAdmin), utils.PaginationParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, foreign.ID, tasks[0].ID)

	_, _, err = env.reports.ListCompleted(principal(env.user), utils.PaginationParams{})
	require.ErrorIs(t, err, auth.ErrPermissionDenied)
}

func TestReportService_GetReport(t *testing.T) {
	env := setupServiceEnv(t)
	stranger := testutil.CreateUser(t, env.db, "stranger@example.com", models.RoleUser, nil)
	open := testutil.CreateTask(t, env.db, "Open", env.user, models.TaskStatusPending)
	done := testutil.CreateTask(t, env.db, "Done", env.user, models.TaskStatusPending)
	foreign := testutil.CreateTask(t, env.db, "Foreign", stranger, models.TaskStatusPending)
	completeTask(t, env, done, time.Now())
	completeTask(t, env, foreign, time.Now())

	admin := principal(env.admin)

	_, err := env.reports.GetReport(admin, open.ID)
	require.ErrorIs(t, err, ErrTaskNotCompleted)

	_, err = env.reports.GetReport(admin, foreign.ID)
	require.ErrorIs(t, err, ErrNoTaskWithID)

	_, err = env.reports.GetReport(admin, 31337)
	require.ErrorIs(t, err, ErrNoTaskWithID)

	report, err := env.reports.GetReport(admin, done.ID)
	require.NoError(t, err)
	assert.Equal(t, "done", *report.CompletionReport)
	assert.Equal(t, "1.25", report.WorkedHours.Decimal.StringFixed(2))

	_, err = env.reports.GetReport(principal(env.superAdmin), foreign.ID)
	require.NoError(t, err)

	_, err = env.reports.GetReport(principal(env.user), done.ID)
	require.ErrorIs(t, err, auth.ErrPermissionDenied)
}
