package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormTeamRepository implements project.TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a team with its members
func (r *GormTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Team, error) {
	var team project.Team
	if err := r.conn(ctx).Preload("Members").First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindByName finds a team by its unique name
func (r *GormTeamRepository) FindByName(ctx context.Context, name string) (*project.Team, error) {
	var team project.Team
	if err := r.conn(ctx).Preload("Members").First(&team, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindAll finds all teams matching the filter
func (r *GormTeamRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[project.Team], error) {
	query := r.conn(ctx).Model(&project.Team{}).Preload("Members")
	query = applySearch(query, filter.Search, "name", "department")
	query = applyEquals(query, filter.Filters, map[string]string{
		"active":     "active",
		"department": "department",
	})
	return findPage[project.Team](query, filter, "name ASC")
}

// Save persists a team together with its membership list
func (r *GormTeamRepository) Save(ctx context.Context, team *project.Team) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&project.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Save(team).Error
	})
}

// Delete removes a team and its membership rows
func (r *GormTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&project.TeamMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&project.Team{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of teams
func (r *GormTeamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&project.Team{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
