package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// TaskStatus represents the workflow status of a task
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusBlocked    TaskStatus = "Blocked"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

// IsValid checks if the priority is one of the allowed values
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task represents a unit of project work assigned to a user.
// Completion stamps completedAt exactly once and forces progress to 100.
type Task struct {
	shared.OwnedEntity
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	ProjectName string         `gorm:"type:varchar(200)"`
	AssignedTo  *uuid.UUID     `gorm:"type:uuid;index"`
	TeamID      *uuid.UUID     `gorm:"type:uuid;index"`
	Status         TaskStatus      `gorm:"type:varchar(20);not null;default:'To Do';index"`
	Priority       TaskPriority    `gorm:"type:varchar(10);not null;default:'Medium'"`
	DueDate        *time.Time      `gorm:"index"`
	CompletedAt    *time.Time
	Progress       int             `gorm:"not null;default:0"`
	EstimatedHours decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	ActualHours    decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	Notes          string          `gorm:"type:text"`
	Tags           pq.StringArray  `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new task in the To Do state
func NewTask(createdBy uuid.UUID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Please provide a task title")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title cannot exceed 200 characters")
	}

	return &Task{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Title:       title,
		Status:      TaskStatusToDo,
		Priority:    TaskPriorityMedium,
		Tags:        pq.StringArray{},
	}, nil
}

// Retitle changes the task title
func (t *Task) Retitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Please provide a task title")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Task title cannot exceed 200 characters")
	}
	t.Title = title
	t.Touch()
	return nil
}

// Assign sets the assignee
func (t *Task) Assign(userID uuid.UUID) {
	t.AssignedTo = &userID
	t.Touch()
}

// Unassign clears the assignee
func (t *Task) Unassign() {
	t.AssignedTo = nil
	t.Touch()
}

// SetPriority updates the priority
func (t *Task) SetPriority(priority TaskPriority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Unknown task priority")
	}
	t.Priority = priority
	t.Touch()
	return nil
}

// SetProgress updates the completion percentage. Reaching 100 moves the task
// to Completed.
func (t *Task) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	t.Progress = progress
	if progress == 100 && t.Status != TaskStatusCompleted {
		t.complete(time.Now())
	}
	t.Touch()
	return nil
}

// SetStatus moves the task through its workflow. Moving into Completed stamps
// completedAt once and forces progress to 100; leaving Completed clears the
// stamp.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown task status")
	}
	if status == t.Status {
		return nil
	}
	if status == TaskStatusCompleted {
		t.complete(time.Now())
	} else {
		if t.Status == TaskStatusCompleted {
			t.CompletedAt = nil
		}
		t.Status = status
	}
	t.Touch()
	return nil
}

// SetEstimatedHours updates the planned effort
func (t *Task) SetEstimatedHours(hours decimal.Decimal) error {
	if hours.IsNegative() {
		return shared.NewDomainError("INVALID_HOURS", "Estimated hours cannot be negative")
	}
	t.EstimatedHours = hours
	t.Touch()
	return nil
}

// SetActualHours updates the recorded effort
func (t *Task) SetActualHours(hours decimal.Decimal) error {
	if hours.IsNegative() {
		return shared.NewDomainError("INVALID_HOURS", "Actual hours cannot be negative")
	}
	t.ActualHours = hours
	t.Touch()
	return nil
}

// SetTags replaces the tag list, dropping blanks and duplicates
func (t *Task) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	clean := make(pq.StringArray, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		clean = append(clean, tag)
	}
	t.Tags = clean
	t.Touch()
}

// IsOverdue reports whether an unfinished task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

func (t *Task) complete(at time.Time) {
	t.Status = TaskStatusCompleted
	t.Progress = 100
	if t.CompletedAt == nil {
		ts := at
		t.CompletedAt = &ts
	}
}
