package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a user by their ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by their email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.conn(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[identity.User], error) {
	query := r.conn(ctx).Model(&identity.User{})
	query = applySearch(query, filter.Search, "name", "email", "department")
	query = applyEquals(query, filter.Filters, map[string]string{
		"role":   "role",
		"active": "active",
	})
	return findPage[identity.User](query, filter, "name ASC")
}

// FindIDsByRole returns the IDs of all active users holding any of the roles
func (r *GormUserRepository) FindIDsByRole(ctx context.Context, roles ...identity.Role) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).Model(&identity.User{}).
		Where("role IN ? AND active = ?", roles, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindSummaries loads lightweight summaries for a set of user IDs
func (r *GormUserRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]identity.UserSummary, error) {
	result := make(map[uuid.UUID]identity.UserSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var summaries []identity.UserSummary
	err := r.conn(ctx).Model(&identity.User{}).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}

	for _, s := range summaries {
		result[s.ID] = s
	}
	return result, nil
}

// Save persists a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.conn(ctx).Save(user).Error
}

// Delete removes a user by ID
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&identity.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&identity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Stats aggregates account counts by activation and role
func (r *GormUserRepository) Stats(ctx context.Context) (*identity.UserStats, error) {
	var stats identity.UserStats
	err := r.conn(ctx).Model(&identity.User{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) AS active",
			"COALESCE(SUM(CASE WHEN role = 'Super Admin' THEN 1 ELSE 0 END), 0) AS super_admins",
			"COALESCE(SUM(CASE WHEN role = 'Admin' THEN 1 ELSE 0 END), 0) AS admins",
			"COALESCE(SUM(CASE WHEN role = 'Designer' THEN 1 ELSE 0 END), 0) AS designers",
			"COALESCE(SUM(CASE WHEN role = 'Manager' THEN 1 ELSE 0 END), 0) AS managers",
			"COALESCE(SUM(CASE WHEN role = 'User' THEN 1 ELSE 0 END), 0) AS users",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
