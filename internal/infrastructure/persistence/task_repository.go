package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormTaskRepository implements project.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Task, error) {
	var task project.Task
	if err := r.conn(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindAll finds all tasks matching the filter
func (r *GormTaskRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[project.Task], error) {
	query := r.taskQuery(ctx, filter)
	return findPage[project.Task](query, filter, "created_at DESC")
}

// FindByAssignee finds tasks assigned to a user
func (r *GormTaskRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[project.Task], error) {
	query := r.taskQuery(ctx, filter).Where("assigned_to = ?", userID)
	return findPage[project.Task](query, filter, "created_at DESC")
}

func (r *GormTaskRepository) taskQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.conn(ctx).Model(&project.Task{})
	query = applySearch(query, filter.Search, "title", "description")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status":   "status",
		"priority": "priority",
		"team_id":  "team_id",
	})
	return query
}

// Save persists a task
func (r *GormTaskRepository) Save(ctx context.Context, task *project.Task) error {
	return r.conn(ctx).Save(task).Error
}

// Delete removes a task by ID
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&project.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates task counts by workflow state
func (r *GormTaskRepository) Stats(ctx context.Context) (*project.TaskStats, error) {
	var stats project.TaskStats
	err := r.conn(ctx).Model(&project.Task{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'To Do' THEN 1 ELSE 0 END), 0) AS to_do",
			"COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0) AS in_progress",
			"COALESCE(SUM(CASE WHEN status = 'Blocked' THEN 1 ELSE 0 END), 0) AS blocked",
			"COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.conn(ctx).Model(&project.Task{}).
		Where("due_date < ? AND status <> 'Completed'", time.Now()).
		Count(&stats.Overdue).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
