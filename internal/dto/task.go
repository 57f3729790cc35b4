package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/yukikurage/task-report-api/internal/constants"
	"github.com/yukikurage/task-report-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	AssignedTo       UserDTO           `json:"assigned_to"`
	DueDate          string            `json:"due_date"`
	Status           models.TaskStatus `json:"status"`
	CompletionReport *string           `json:"completion_report"`
	WorkedHours      *string           `json:"worked_hours"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO. The assignee must be preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		AssignedTo:       ToUserDTO(task.Assignee),
		DueDate:          task.DueDate.Format(constants.DateLayout),
		Status:           task.Status,
		CompletionReport: task.CompletionReport,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	if task.WorkedHours.Valid {
		hours := task.WorkedHours.Decimal.StringFixed(2)
		dto.WorkedHours = &hours
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// UpdateTaskStatusRequest is the body of PUT /api/tasks/:id/
type UpdateTaskStatusRequest struct {
	Status           string      `json:"status"`
	CompletionReport string      `json:"completion_report"`
	WorkedHours      NumberInput `json:"worked_hours"`
}

// NumberInput accepts a JSON number, a numeric string or null and keeps the
// raw text for later parsing.
type NumberInput string

var errNumberInput = errors.New("expected a number or a string")

// UnmarshalJSON implements json.Unmarshaler
func (n *NumberInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberInput(s)
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return errNumberInput
		}
		*n = NumberInput(num.String())
		return nil
	}
}

// LoginRequest is the body of POST /api/Login/
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is the body of POST /api/token/refresh/
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries a newly issued access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
