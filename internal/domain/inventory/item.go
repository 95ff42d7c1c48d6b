package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// StockStatus represents the derived stock status of an item.
// It is a pure function of (stock, reorder level) and is never accepted
// as direct input.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// DeriveStockStatus computes the stock status from stock and reorder level
func DeriveStockStatus(stock, reorderLevel decimal.Decimal) StockStatus {
	switch {
	case stock.IsZero():
		return StockStatusOutOfStock
	case stock.LessThanOrEqual(reorderLevel):
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Unit represents a unit of measure for design inventory
type Unit string

const (
	UnitSCM    Unit = "SCM"
	UnitSheets Unit = "sheets"
	UnitSqft   Unit = "sqft"
	UnitPieces Unit = "pieces"
	UnitMeters Unit = "meters"
	UnitLiters Unit = "liters"
	UnitKg     Unit = "kg"
)

// IsValid checks if the unit is one of the allowed units
func (u Unit) IsValid() bool {
	switch u {
	case UnitSCM, UnitSheets, UnitSqft, UnitPieces, UnitMeters, UnitLiters, UnitKg:
		return true
	}
	return false
}

// Item represents a design inventory item
type Item struct {
	shared.OwnedEntity
	ItemName     string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Section      string          `gorm:"type:varchar(100);not null;index"`
	Finish       string          `gorm:"type:varchar(100)"`
	Material     string          `gorm:"type:varchar(100)"`
	Unit         Unit            `gorm:"type:varchar(20);not null;default:'SCM'"`
	Size         string          `gorm:"type:varchar(100)"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OfferPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:10"`
	Image        string          `gorm:"type:text"`
	Catalog      string          `gorm:"type:text"`
	Status       StockStatus     `gorm:"type:varchar(20);not null;default:'In Stock';index"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item with required fields
func NewItem(createdBy uuid.UUID, itemName, section string, unit Unit, price decimal.Decimal) (*Item, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, shared.NewDomainError("INVALID_SECTION", "Section cannot be empty")
	}
	if unit == "" {
		unit = UnitSCM
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit is not one of the allowed units")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	item := &Item{
		OwnedEntity:  shared.NewOwnedEntity(createdBy),
		ItemName:     itemName,
		Section:      section,
		Unit:         unit,
		Price:        price,
		ReorderLevel: decimal.NewFromInt(10),
	}
	item.RefreshStatus()
	return item, nil
}

// Rename changes the item name
func (i *Item) Rename(itemName string) error {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	i.ItemName = itemName
	i.Touch()
	return nil
}

// SetPrice updates the unit price
func (i *Item) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Price = price
	i.Touch()
	return nil
}

// SetOfferPrice updates the discounted price
func (i *Item) SetOfferPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Offer price cannot be negative")
	}
	i.OfferPrice = price
	i.Touch()
	return nil
}

// SetStock updates the stock level and re-derives the status
func (i *Item) SetStock(stock decimal.Decimal) error {
	if stock.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	i.Stock = stock
	i.RefreshStatus()
	i.Touch()
	return nil
}

// SetReorderLevel updates the reorder level and re-derives the status
func (i *Item) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	i.ReorderLevel = level
	i.RefreshStatus()
	i.Touch()
	return nil
}

// SetUnit updates the unit of measure
func (i *Item) SetUnit(unit Unit) error {
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_UNIT", "Unit is not one of the allowed units")
	}
	i.Unit = unit
	i.Touch()
	return nil
}

// RefreshStatus recomputes the derived status from stock and reorder level.
// Called before every persist; any externally supplied status is discarded.
func (i *Item) RefreshStatus() {
	i.Status = DeriveStockStatus(i.Stock, i.ReorderLevel)
}
