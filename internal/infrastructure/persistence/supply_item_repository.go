package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/inventory"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormSupplyItemRepository implements inventory.SupplyItemRepository using GORM
type GormSupplyItemRepository struct {
	db *gorm.DB
}

// NewGormSupplyItemRepository creates a new GormSupplyItemRepository
func NewGormSupplyItemRepository(db *gorm.DB) *GormSupplyItemRepository {
	return &GormSupplyItemRepository{db: db}
}

func (r *GormSupplyItemRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a supply item by its ID
func (r *GormSupplyItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.SupplyItem, error) {
	var item inventory.SupplyItem
	if err := r.conn(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all supply items matching the filter
func (r *GormSupplyItemRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.SupplyItem], error) {
	query := r.conn(ctx).Model(&inventory.SupplyItem{})
	query = applySearch(query, filter.Search, "item_name", "sku", "supplier")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status":            "status",
		"supplier":          "supplier",
		"purchase_order_id": "purchase_order_id",
	})
	return findPage[inventory.SupplyItem](query, filter, "created_at DESC")
}

// Save persists a supply item
func (r *GormSupplyItemRepository) Save(ctx context.Context, item *inventory.SupplyItem) error {
	return r.conn(ctx).Save(item).Error
}

// Delete removes a supply item by ID
func (r *GormSupplyItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&inventory.SupplyItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates supply item counts by stock status
func (r *GormSupplyItemRepository) Stats(ctx context.Context) (*inventory.SupplyItemStats, error) {
	var stats inventory.SupplyItemStats
	err := r.conn(ctx).Model(&inventory.SupplyItem{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'In Stock' THEN 1 ELSE 0 END), 0) AS in_stock",
			"COALESCE(SUM(CASE WHEN status = 'Low Stock' THEN 1 ELSE 0 END), 0) AS low_stock",
			"COALESCE(SUM(CASE WHEN status = 'Out of Stock' THEN 1 ELSE 0 END), 0) AS out_of_stock",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
