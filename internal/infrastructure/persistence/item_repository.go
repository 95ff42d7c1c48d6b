package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/inventory"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds an inventory item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.conn(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all inventory items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.Item], error) {
	query := r.conn(ctx).Model(&inventory.Item{})
	query = applySearch(query, filter.Search, "item_name", "description", "section")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status":  "status",
		"section": "section",
		"unit":    "unit",
	})
	return findPage[inventory.Item](query, filter, "created_at DESC")
}

// FindLowStock returns items at or below their reorder level, lowest first
func (r *GormItemRepository) FindLowStock(ctx context.Context, limit int) ([]inventory.Item, error) {
	if limit <= 0 {
		limit = 10
	}
	var items []inventory.Item
	err := r.conn(ctx).
		Where("status IN ?", []inventory.StockStatus{inventory.StockStatusLowStock, inventory.StockStatusOutOfStock}).
		Order("stock ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save persists an inventory item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.conn(ctx).Save(item).Error
}

// Delete removes an inventory item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates item counts by stock status and total stock value
func (r *GormItemRepository) Stats(ctx context.Context) (*inventory.ItemStats, error) {
	var stats inventory.ItemStats
	err := r.conn(ctx).Model(&inventory.Item{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'In Stock' THEN 1 ELSE 0 END), 0) AS in_stock",
			"COALESCE(SUM(CASE WHEN status = 'Low Stock' THEN 1 ELSE 0 END), 0) AS low_stock",
			"COALESCE(SUM(CASE WHEN status = 'Out of Stock' THEN 1 ELSE 0 END), 0) AS out_of_stock",
			"COALESCE(SUM(stock * price), 0) AS total_value",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
