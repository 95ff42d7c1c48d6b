package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// QuotationStats aggregates quotation counts and value by status
type QuotationStats struct {
	Total         int64           `json:"total"`
	Draft         int64           `json:"draft"`
	Sent          int64           `json:"sent"`
	Pending       int64           `json:"pending"`
	Approved      int64           `json:"approved"`
	Rejected      int64           `json:"rejected"`
	Expired       int64           `json:"expired"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	ApprovedValue decimal.Decimal `json:"approvedValue"`
}

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Quotation], error)
	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextNumber allocates the next quotation number for the given year,
	// e.g. QT-2026-0042. Allocation is atomic across concurrent callers.
	NextNumber(ctx context.Context, year int) (string, error)
	Stats(ctx context.Context) (*QuotationStats, error)
	// RevenueByMonth buckets approved quotation value by approval month,
	// newest month first. Either bound may be nil to leave the range open.
	RevenueByMonth(ctx context.Context, start, end *time.Time) ([]MonthlyRevenue, error)
}

// MonthlyRevenue is one month of approved quotation value
type MonthlyRevenue struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

// InvoiceStats aggregates invoice counts and money by payment state
type InvoiceStats struct {
	Total         int64           `json:"total"`
	Paid          int64           `json:"paid"`
	PartiallyPaid int64           `json:"partiallyPaid"`
	Overdue       int64           `json:"overdue"`
	TotalBilled   decimal.Decimal `json:"totalBilled"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Invoice], error)
	FindRecent(ctx context.Context, limit int) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextNumber allocates the next invoice number for the given year,
	// e.g. INV-2026-007. Allocation is atomic across concurrent callers.
	NextNumber(ctx context.Context, year int) (string, error)
	Stats(ctx context.Context) (*InvoiceStats, error)
}
