package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.conn(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Client], error) {
	query := r.conn(ctx).Model(&partner.Client{})
	query = applySearch(query, filter.Search, "name", "email", "client_gst")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status": "status",
	})
	return findPage[partner.Client](query, filter, "created_at DESC")
}

// FindSummaries loads lightweight summaries for a set of client IDs
func (r *GormClientRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]partner.ClientSummary, error) {
	result := make(map[uuid.UUID]partner.ClientSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var summaries []partner.ClientSummary
	err := r.conn(ctx).Model(&partner.Client{}).
		Select("id", "name", "email", "phone").
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

// Save persists a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.conn(ctx).Save(client).Error
}

// Delete removes a client by ID
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&partner.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates client counts by status
func (r *GormClientRepository) Stats(ctx context.Context) (*partner.ClientStats, error) {
	var stats partner.ClientStats
	err := r.conn(ctx).Model(&partner.Client{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'Active' THEN 1 ELSE 0 END), 0) AS active",
			"COALESCE(SUM(CASE WHEN status = 'Inactive' THEN 1 ELSE 0 END), 0) AS inactive",
			"COALESCE(SUM(CASE WHEN status = 'Archived' THEN 1 ELSE 0 END), 0) AS archived",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
