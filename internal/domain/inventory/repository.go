package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// ItemStats holds per-status inventory counts and the total stock valuation
type ItemStats struct {
	Total      int64           `json:"total"`
	InStock    int64           `json:"inStock"`
	LowStock   int64           `json:"lowStock"`
	OutOfStock int64           `json:"outOfStock"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// ItemRepository defines the interface for design inventory persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Item], error)
	FindLowStock(ctx context.Context, limit int) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ItemStats, error)
}

// SupplyItemStats holds per-status supplier stock counts
type SupplyItemStats struct {
	Total      int64 `json:"total"`
	InStock    int64 `json:"inStock"`
	LowStock   int64 `json:"lowStock"`
	OutOfStock int64 `json:"outOfStock"`
}

// SupplyItemRepository defines the interface for supplier stock persistence
type SupplyItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplyItem, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplyItem], error)
	Save(ctx context.Context, item *SupplyItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*SupplyItemStats, error)
}
