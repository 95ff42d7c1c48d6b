package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// SupplyItem tracks supplier-side stock received against purchase orders,
// kept separate from the design inventory.
type SupplyItem struct {
	shared.OwnedEntity
	ItemName        string          `gorm:"type:varchar(200);not null"`
	SKU             string          `gorm:"type:varchar(50);index"`
	Supplier        string          `gorm:"type:varchar(200);not null;index"`
	PurchaseOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	CurrentStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit            string          `gorm:"type:varchar(20);not null;default:'Sheets'"`
	ReorderPoint    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:20"`
	LastReceived    *time.Time
	Status          StockStatus `gorm:"type:varchar(20);not null;default:'In Stock';index"`
	Notes           string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplyItem) TableName() string {
	return "supply_items"
}

// NewSupplyItem creates a new supplier stock item
func NewSupplyItem(createdBy uuid.UUID, itemName, supplier string) (*SupplyItem, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot be empty")
	}

	item := &SupplyItem{
		OwnedEntity:  shared.NewOwnedEntity(createdBy),
		ItemName:     itemName,
		Supplier:     supplier,
		Unit:         "Sheets",
		ReorderPoint: decimal.NewFromInt(20),
	}
	item.RefreshStatus()
	return item, nil
}

// Rename changes the item name
func (s *SupplyItem) Rename(itemName string) error {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	s.ItemName = itemName
	s.Touch()
	return nil
}

// SetSKU sets the stock keeping unit, uppercased
func (s *SupplyItem) SetSKU(sku string) {
	s.SKU = strings.ToUpper(strings.TrimSpace(sku))
	s.Touch()
}

// SetStock updates the current stock, stamps the receipt time and re-derives
// the status
func (s *SupplyItem) SetStock(stock decimal.Decimal) error {
	if stock.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	now := time.Now()
	s.CurrentStock = stock
	s.LastReceived = &now
	s.RefreshStatus()
	s.Touch()
	return nil
}

// SetReorderPoint updates the reorder point and re-derives the status
func (s *SupplyItem) SetReorderPoint(point decimal.Decimal) error {
	if point.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_POINT", "Reorder point cannot be negative")
	}
	s.ReorderPoint = point
	s.RefreshStatus()
	s.Touch()
	return nil
}

// RefreshStatus recomputes the derived status from current stock and reorder
// point. Called before every persist.
func (s *SupplyItem) RefreshStatus() {
	s.Status = DeriveStockStatus(s.CurrentStock, s.ReorderPoint)
}
