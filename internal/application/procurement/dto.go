package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/studioerp/backend/internal/domain/procurement"
)

// PurchaseOrderItemRequest represents one line item in a purchase order payload
type PurchaseOrderItemRequest struct {
	ItemName    string          `json:"itemName" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit" binding:"max=20"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierName     string                     `json:"supplierName" binding:"required,min=1,max=200"`
	SupplierContact  string                     `json:"supplierContact" binding:"max=50"`
	SupplierEmail    string                     `json:"supplierEmail" binding:"omitempty,email"`
	Items            []PurchaseOrderItemRequest `json:"items"`
	TaxRate          *decimal.Decimal           `json:"taxRate"`
	ExpectedDelivery *time.Time                 `json:"expectedDelivery"`
	Notes            string                     `json:"notes"`
	CreatedBy        *uuid.UUID                 `json:"-"`
}

// UpdatePurchaseOrderRequest represents a partial update to a purchase order
type UpdatePurchaseOrderRequest struct {
	SupplierName     *string                     `json:"supplierName" binding:"omitempty,min=1,max=200"`
	SupplierContact  *string                     `json:"supplierContact" binding:"omitempty,max=50"`
	SupplierEmail    *string                     `json:"supplierEmail" binding:"omitempty,email"`
	Items            *[]PurchaseOrderItemRequest `json:"items"`
	TaxRate          *decimal.Decimal            `json:"taxRate"`
	ExpectedDelivery *time.Time                  `json:"expectedDelivery"`
	Notes            *string                     `json:"notes"`
}

// ReceiptLineRequest records a delivered quantity against one order line
type ReceiptLineRequest struct {
	ItemID           uuid.UUID       `json:"itemId" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"receivedQuantity" binding:"required"`
}

// ReceivePurchaseOrderRequest records a delivery against a purchase order.
// An empty items list receives every line in full.
type ReceivePurchaseOrderRequest struct {
	Items []ReceiptLineRequest `json:"items" binding:"omitempty,dive"`
}

// PurchaseOrderItemResponse represents a purchase order line item in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ItemName         string          `json:"itemName"`
	Description      string          `json:"description"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"receivedQuantity"`
	Unit             string          `json:"unit"`
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID               uuid.UUID                   `json:"id"`
	PONumber         string                      `json:"poNumber"`
	SupplierName     string                      `json:"supplierName"`
	SupplierContact  string                      `json:"supplierContact"`
	SupplierEmail    string                      `json:"supplierEmail"`
	Items            []PurchaseOrderItemResponse `json:"items"`
	Subtotal         decimal.Decimal             `json:"subtotal"`
	TaxRate          decimal.Decimal             `json:"taxRate"`
	TaxAmount        decimal.Decimal             `json:"taxAmount"`
	TotalAmount      decimal.Decimal             `json:"totalAmount"`
	Status           string                      `json:"status"`
	ExpectedDelivery *time.Time                  `json:"expectedDelivery"`
	ReceivedAt       *time.Time                  `json:"receivedAt"`
	ApprovedBy       *uuid.UUID                  `json:"approvedBy"`
	ApprovedAt       *time.Time                  `json:"approvedAt"`
	Notes            string                      `json:"notes"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// ToPurchaseOrderResponse maps a domain purchase order to its API representation
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i, item := range po.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:               item.ID,
			ItemName:         item.ItemName,
			Description:      item.Description,
			Quantity:         item.Quantity,
			ReceivedQuantity: item.ReceivedQuantity,
			Unit:             item.Unit,
			Rate:             item.Rate,
			Amount:           item.Amount,
		}
	}
	return PurchaseOrderResponse{
		ID:               po.ID,
		PONumber:         po.PONumber,
		SupplierName:     po.SupplierName,
		SupplierContact:  po.SupplierContact,
		SupplierEmail:    po.SupplierEmail,
		Items:            items,
		Subtotal:         po.Subtotal,
		TaxRate:          po.TaxRate,
		TaxAmount:        po.TaxAmount,
		TotalAmount:      po.TotalAmount,
		Status:           string(po.Status),
		ExpectedDelivery: po.ExpectedDelivery,
		ReceivedAt:       po.ReceivedAt,
		ApprovedBy:       po.ApprovedBy,
		ApprovedAt:       po.ApprovedAt,
		Notes:            po.Notes,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}
}
