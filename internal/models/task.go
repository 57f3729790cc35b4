package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the statuses in workflow order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// ParseTaskStatus maps a status token to its canonical value, ignoring case
// and surrounding whitespace.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return status, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether a task in status s may move to next.
// Completed is terminal.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == TaskStatusCompleted {
		return next == TaskStatusCompleted
	}
	return true
}

func (s TaskStatus) Label() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

type Task struct {
	ID               uint64              `gorm:"primarykey" json:"id"`
	Title            string              `gorm:"type:varchar(255);not null" json:"title"`
	TitleKey         string              `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	Description      string              `gorm:"type:text;not null" json:"description"`
	AssigneeID       uint64              `gorm:"not null;index" json:"assignee_id"`
	DueDate          time.Time           `gorm:"type:date;not null" json:"due_date"`
	Status           TaskStatus          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CompletionReport *string             `gorm:"type:text" json:"completion_report"`
	WorkedHours      decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"worked_hours"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `gorm:"index" json:"updated_at"`

	// Relations
	Assignee User `gorm:"foreignKey:AssigneeID;constraint:OnDelete:CASCADE" json:"assigned_to"`
}

// SetTitle sets the title together with its case-insensitive uniqueness key.
func (t *Task) SetTitle(title string) {
	t.Title = strings.TrimSpace(title)
	t.TitleKey = TitleKey(title)
}

// TitleKey is the value that must be unique across tasks.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Complete records the completion fields.
func (t *Task) Complete(report string, hours decimal.Decimal) {
	t.Status = TaskStatusCompleted
	t.CompletionReport = &report
	t.WorkedHours = decimal.NullDecimal{Decimal: hours, Valid: true}
}

// ClearCompletion moves the task to a non-terminal status and drops the
// completion fields.
func (t *Task) ClearCompletion(status TaskStatus) {
	t.Status = status
	t.CompletionReport = nil
	t.WorkedHours = decimal.NullDecimal{}
}
