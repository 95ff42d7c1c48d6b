package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/studioerp/backend/internal/domain/inventory"
)

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	ItemName     string           `json:"itemName" binding:"required,min=1,max=200"`
	Description  string           `json:"description"`
	Section      string           `json:"section" binding:"required,min=1,max=100"`
	Finish       string           `json:"finish" binding:"max=100"`
	Material     string           `json:"material" binding:"max=100"`
	Unit         string           `json:"unit" binding:"required,oneof=SCM sheets sqft pieces meters liters kg"`
	Size         string           `json:"size" binding:"max=100"`
	Price        decimal.Decimal  `json:"price" binding:"required"`
	OfferPrice   *decimal.Decimal `json:"offerPrice"`
	Stock        *decimal.Decimal `json:"stock"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel"`
	Image        string           `json:"image"`
	Catalog      string           `json:"catalog"`
	CreatedBy    *uuid.UUID       `json:"-"`
}

// UpdateItemRequest represents a partial update to an inventory item
type UpdateItemRequest struct {
	ItemName     *string          `json:"itemName" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Section      *string          `json:"section" binding:"omitempty,min=1,max=100"`
	Finish       *string          `json:"finish" binding:"omitempty,max=100"`
	Material     *string          `json:"material" binding:"omitempty,max=100"`
	Unit         *string          `json:"unit" binding:"omitempty,oneof=SCM sheets sqft pieces meters liters kg"`
	Size         *string          `json:"size" binding:"omitempty,max=100"`
	Price        *decimal.Decimal `json:"price"`
	OfferPrice   *decimal.Decimal `json:"offerPrice"`
	Stock        *decimal.Decimal `json:"stock"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel"`
	Image        *string          `json:"image"`
	Catalog      *string          `json:"catalog"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ItemName     string          `json:"itemName"`
	Description  string          `json:"description"`
	Section      string          `json:"section"`
	Finish       string          `json:"finish"`
	Material     string          `json:"material"`
	Unit         string          `json:"unit"`
	Size         string          `json:"size"`
	Price        decimal.Decimal `json:"price"`
	OfferPrice   decimal.Decimal `json:"offerPrice"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Image        string          `json:"image"`
	Catalog      string          `json:"catalog"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToItemResponse maps a domain item to its API representation
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		ItemName:     i.ItemName,
		Description:  i.Description,
		Section:      i.Section,
		Finish:       i.Finish,
		Material:     i.Material,
		Unit:         string(i.Unit),
		Size:         i.Size,
		Price:        i.Price,
		OfferPrice:   i.OfferPrice,
		Stock:        i.Stock,
		ReorderLevel: i.ReorderLevel,
		Image:        i.Image,
		Catalog:      i.Catalog,
		Status:       string(i.Status),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// CreateSupplyItemRequest represents a request to create a supply item
type CreateSupplyItemRequest struct {
	ItemName        string           `json:"itemName" binding:"required,min=1,max=200"`
	SKU             string           `json:"sku" binding:"max=50"`
	Supplier        string           `json:"supplier" binding:"required,min=1,max=200"`
	PurchaseOrderID *uuid.UUID       `json:"purchaseOrderId"`
	CurrentStock    *decimal.Decimal `json:"currentStock"`
	Unit            string           `json:"unit" binding:"max=20"`
	ReorderPoint    *decimal.Decimal `json:"reorderPoint"`
	Notes           string           `json:"notes"`
	CreatedBy       *uuid.UUID       `json:"-"`
}

// UpdateSupplyItemRequest represents a partial update to a supply item
type UpdateSupplyItemRequest struct {
	ItemName        *string          `json:"itemName" binding:"omitempty,min=1,max=200"`
	SKU             *string          `json:"sku" binding:"omitempty,max=50"`
	Supplier        *string          `json:"supplier" binding:"omitempty,min=1,max=200"`
	PurchaseOrderID *uuid.UUID       `json:"purchaseOrderId"`
	Unit            *string          `json:"unit" binding:"omitempty,max=20"`
	ReorderPoint    *decimal.Decimal `json:"reorderPoint"`
	Notes           *string          `json:"notes"`
}

// AdjustStockRequest sets the absolute stock level of a supply item
type AdjustStockRequest struct {
	CurrentStock decimal.Decimal `json:"currentStock" binding:"required"`
}

// SupplyItemResponse represents a supply item in API responses
type SupplyItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemName        string          `json:"itemName"`
	SKU             string          `json:"sku"`
	Supplier        string          `json:"supplier"`
	PurchaseOrderID *uuid.UUID      `json:"purchaseOrderId"`
	CurrentStock    decimal.Decimal `json:"currentStock"`
	Unit            string          `json:"unit"`
	ReorderPoint    decimal.Decimal `json:"reorderPoint"`
	LastReceived    *time.Time      `json:"lastReceived"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToSupplyItemResponse maps a domain supply item to its API representation
func ToSupplyItemResponse(s *inventory.SupplyItem) SupplyItemResponse {
	return SupplyItemResponse{
		ID:              s.ID,
		ItemName:        s.ItemName,
		SKU:             s.SKU,
		Supplier:        s.Supplier,
		PurchaseOrderID: s.PurchaseOrderID,
		CurrentStock:    s.CurrentStock,
		Unit:            s.Unit,
		ReorderPoint:    s.ReorderPoint,
		LastReceived:    s.LastReceived,
		Status:          string(s.Status),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
