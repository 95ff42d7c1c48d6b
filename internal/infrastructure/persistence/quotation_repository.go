package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormQuotationRepository implements sales.QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

func (r *GormQuotationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds a quotation with its line items
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Quotation, error) {
	var quotation sales.Quotation
	if err := r.conn(ctx).Preload("Items").First(&quotation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quotation, nil
}

// FindAll finds all quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[sales.Quotation], error) {
	query := r.conn(ctx).Model(&sales.Quotation{}).Preload("Items")
	query = applySearch(query, filter.Search, "quotation_number", "project_name")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status":       "status",
		"client_id":    "client_id",
		"project_type": "project_type",
	})
	return findPage[sales.Quotation](query, filter, "created_at DESC")
}

// Save persists a quotation together with its line items. Removed items are
// deleted so the stored list always mirrors the aggregate.
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *sales.Quotation) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&sales.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Save(quotation).Error
	})
}

// Delete removes a quotation and its line items
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&sales.QuotationItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Quotation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextNumber allocates the next quotation number for the year
func (r *GormQuotationRepository) NextNumber(ctx context.Context, year int) (string, error) {
	return nextDocumentNumber(ctx, r.conn(ctx), "quotation", "QT", year, 4)
}

// RevenueByMonth buckets approved quotation value by the month it was
// approved, newest month first. Nil bounds leave the range open.
func (r *GormQuotationRepository) RevenueByMonth(ctx context.Context, start, end *time.Time) ([]sales.MonthlyRevenue, error) {
	conn := r.conn(ctx)
	yearExpr := "CAST(EXTRACT(YEAR FROM approved_at) AS INTEGER)"
	monthExpr := "CAST(EXTRACT(MONTH FROM approved_at) AS INTEGER)"
	if conn.Dialector.Name() == "sqlite" {
		yearExpr = "CAST(strftime('%Y', approved_at) AS INTEGER)"
		monthExpr = "CAST(strftime('%m', approved_at) AS INTEGER)"
	}

	query := conn.Model(&sales.Quotation{}).
		Where("status = ?", sales.QuotationStatusApproved).
		Where("approved_at IS NOT NULL")
	if start != nil {
		query = query.Where("approved_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("approved_at <= ?", *end)
	}

	var rows []sales.MonthlyRevenue
	err := query.
		Select(
			yearExpr+" AS year",
			monthExpr+" AS month",
			"COALESCE(SUM(total_amount), 0) AS revenue",
			"COUNT(*) AS count",
		).
		Group("year, month").
		Order("year DESC, month DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Stats aggregates quotation counts and value by status
func (r *GormQuotationRepository) Stats(ctx context.Context) (*sales.QuotationStats, error) {
	var stats sales.QuotationStats
	err := r.conn(ctx).Model(&sales.Quotation{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'Draft' THEN 1 ELSE 0 END), 0) AS draft",
			"COALESCE(SUM(CASE WHEN status = 'Sent' THEN 1 ELSE 0 END), 0) AS sent",
			"COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0) AS pending",
			"COALESCE(SUM(CASE WHEN status = 'Approved' THEN 1 ELSE 0 END), 0) AS approved",
			"COALESCE(SUM(CASE WHEN status = 'Rejected' THEN 1 ELSE 0 END), 0) AS rejected",
			"COALESCE(SUM(CASE WHEN status = 'Expired' THEN 1 ELSE 0 END), 0) AS expired",
			"COALESCE(SUM(total_amount), 0) AS total_value",
			"COALESCE(SUM(CASE WHEN status = 'Approved' THEN total_amount ELSE 0 END), 0) AS approved_value",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
