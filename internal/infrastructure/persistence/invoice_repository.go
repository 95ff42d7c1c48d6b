package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// GormInvoiceRepository implements sales.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByID finds an invoice with its line items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	var invoice sales.Invoice
	if err := r.conn(ctx).Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[sales.Invoice], error) {
	query := r.conn(ctx).Model(&sales.Invoice{}).Preload("Items")
	query = applySearch(query, filter.Search, "invoice_number", "project_name")
	query = applyEquals(query, filter.Filters, map[string]string{
		"status":       "status",
		"client_id":    "client_id",
		"quotation_id": "quotation_id",
	})
	return findPage[sales.Invoice](query, filter, "created_at DESC")
}

// FindRecent returns the most recently created invoices
func (r *GormInvoiceRepository) FindRecent(ctx context.Context, limit int) ([]sales.Invoice, error) {
	if limit <= 0 {
		limit = 5
	}
	var invoices []sales.Invoice
	err := r.conn(ctx).Order("created_at DESC").Limit(limit).Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists an invoice together with its line items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&sales.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Save(invoice).Error
	})
}

// Delete removes an invoice and its line items
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&sales.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextNumber allocates the next invoice number for the year
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, year int) (string, error) {
	return nextDocumentNumber(ctx, r.conn(ctx), "invoice", "INV", year, 3)
}

// Stats aggregates invoice counts and money by payment state
func (r *GormInvoiceRepository) Stats(ctx context.Context) (*sales.InvoiceStats, error) {
	var stats sales.InvoiceStats
	err := r.conn(ctx).Model(&sales.Invoice{}).
		Select(
			"COUNT(*) AS total",
			"COALESCE(SUM(CASE WHEN status = 'Paid' THEN 1 ELSE 0 END), 0) AS paid",
			"COALESCE(SUM(CASE WHEN status = 'Partially Paid' THEN 1 ELSE 0 END), 0) AS partially_paid",
			"COALESCE(SUM(CASE WHEN status = 'Overdue' THEN 1 ELSE 0 END), 0) AS overdue",
			"COALESCE(SUM(grand_total), 0) AS total_billed",
			"COALESCE(SUM(amount_paid), 0) AS total_received",
			"COALESCE(SUM(grand_total - amount_paid), 0) AS outstanding",
		).
		Where("status <> 'Cancelled'").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
