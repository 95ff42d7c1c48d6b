package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// PurchaseOrderStats aggregates order counts and value by status
type PurchaseOrderStats struct {
	Total      int64           `json:"total"`
	Draft      int64           `json:"draft"`
	Pending    int64           `json:"pending"`
	Approved   int64           `json:"approved"`
	Ordered    int64           `json:"ordered"`
	Received   int64           `json:"received"`
	Cancelled  int64           `json:"cancelled"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrder], error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	// NextNumber allocates the next purchase order number for the given
	// year, e.g. PO-2026-007. Allocation is atomic across concurrent
	// callers.
	NextNumber(ctx context.Context, year int) (string, error)
	Stats(ctx context.Context) (*PurchaseOrderStats, error)
}
