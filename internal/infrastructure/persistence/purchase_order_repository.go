package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/procurement"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a purchase order with its line items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.conn(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[procurement.PurchaseOrder], error) {
	query := r.conn(ctx).Model(&procurement.PurchaseOrder{}).Preload("Items")
	query = applySearch(query, filter.Search, "po_number", "supplier_name")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status": "status",
	})
	return findPage[procurement.PurchaseOrder](query, filter, "created_at DESC")
}

// Save persists a purchase order together with its line items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", order.ID).Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Save(order).Error
	})
}

// Delete removes a purchase order and its line items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextNumber allocates the next purchase order number for the year
func (r *GormPurchaseOrderRepository) NextNumber(ctx context.Context, year int) (string, error) {
	return nextDocumentNumber(ctx, r.conn(ctx), "purchase_order", "PO", year, 3)
}

// Stats aggregates purchase order counts and value by status
func (r *GormPurchaseOrderRepository) Stats(ctx context.Context) (*procurement.PurchaseOrderStats, error) {
	var stats procurement.PurchaseOrderStats
	err := r.conn(ctx).Model(&procurement.PurchaseOrder{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'Draft' THEN 1 ELSE 0 END), 0) AS draft",
			"COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending",
			"COALESCE(SUM(CASE WHEN status = 'Approved' THEN 1 ELSE 0 END), 0) AS approved",
			"COALESCE(SUM(CASE WHEN status = 'Ordered' THEN 1 ELSE 0 END), 0) AS ordered",
			"COALESCE(SUM(CASE WHEN status IN ('Received', 'Partially Received') THEN 1 ELSE 0 END), 0) AS received",
			"COALESCE(SUM(CASE WHEN status = 'Cancelled' THEN 1 ELSE 0 END), 0) AS cancelled",
			"COALESCE(SUM(CASE WHEN status <> 'Cancelled' THEN total_amount ELSE 0 END), 0) AS total_value",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
