package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// TaskStats aggregates task counts by workflow state
type TaskStats struct {
	Total      int64 `json:"total"`
	ToDo       int64 `json:"toDo"`
	InProgress int64 `json:"inProgress"`
	Blocked    int64 `json:"blocked"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// TaskRepository defines the interface for task persistence
type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Task], error)
	FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[Task], error)
	Save(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*TaskStats, error)
}

// TeamRepository defines the interface for team persistence
type TeamRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Team, error)
	FindByName(ctx context.Context, name string) (*Team, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Team], error)
	Save(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
