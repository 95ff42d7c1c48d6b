package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "Draft"
	PurchaseOrderStatusPending           PurchaseOrderStatus = "Pending"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "Approved"
	PurchaseOrderStatusOrdered           PurchaseOrderStatus = "Ordered"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "Partially Received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "Received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "Cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusPending,
		PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered,
		PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived,
		PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrderItem represents a line item on a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	Description      string          `gorm:"type:text"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit             string          `gorm:"type:varchar(20);not null;default:'pieces'"`
	Rate             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Recalculate recomputes the line amount from quantity and rate
func (i *PurchaseOrderItem) Recalculate() {
	i.Amount = i.Quantity.Mul(i.Rate)
}

// PurchaseOrder represents an order placed with a supplier for materials.
// Money totals are derived fields recomputed before every persist.
type PurchaseOrder struct {
	shared.OwnedEntity
	PONumber         string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierName     string              `gorm:"type:varchar(200);not null"`
	SupplierContact  string              `gorm:"type:varchar(50)"`
	SupplierEmail    string              `gorm:"type:varchar(255)"`
	Items            []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`
	Subtotal         decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate          decimal.Decimal     `gorm:"type:decimal(8,4);not null;default:18"`
	TaxAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Status           PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'Draft';index"`
	ExpectedDelivery *time.Time
	ReceivedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(createdBy uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Please provide a supplier name")
	}

	return &PurchaseOrder{
		OwnedEntity:  shared.NewOwnedEntity(createdBy),
		SupplierName: supplierName,
		TaxRate:      decimal.NewFromInt(18),
		Status:       PurchaseOrderStatusDraft,
		Items:        make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem appends a line item and recomputes totals. Items can only be added
// before the order is approved.
func (po *PurchaseOrder) AddItem(itemName, unit string, quantity, rate decimal.Decimal) (*PurchaseOrderItem, error) {
	if !po.isEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Items can only be changed on a draft or pending order")
	}
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if unit == "" {
		unit = "pieces"
	}

	item := PurchaseOrderItem{
		ID:              uuid.New(),
		PurchaseOrderID: po.ID,
		ItemName:        itemName,
		Unit:            unit,
		Quantity:        quantity,
		Rate:            rate,
	}
	item.Recalculate()
	po.Items = append(po.Items, item)
	po.Recalculate()
	po.Touch()
	return &po.Items[len(po.Items)-1], nil
}

// ReplaceItems swaps the full line-item list and recomputes totals
func (po *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) error {
	if !po.isEditable() {
		return shared.NewDomainError("INVALID_STATE", "Items can only be changed on a draft or pending order")
	}
	for idx := range items {
		if items[idx].ID == uuid.Nil {
			items[idx].ID = uuid.New()
		}
		items[idx].PurchaseOrderID = po.ID
		items[idx].Recalculate()
	}
	po.Items = items
	po.Recalculate()
	po.Touch()
	return nil
}

// SetTaxRate updates the tax rate and recomputes totals
func (po *PurchaseOrder) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	po.TaxRate = rate
	po.Recalculate()
	po.Touch()
	return nil
}

// Submit moves a draft order into pending approval
func (po *PurchaseOrder) Submit() error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be submitted")
	}
	po.Status = PurchaseOrderStatusPending
	po.Touch()
	return nil
}

// Approve marks the order approved, stamping the approver and time
func (po *PurchaseOrder) Approve(approvedBy uuid.UUID, at time.Time) error {
	if po.Status != PurchaseOrderStatusDraft && po.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only draft or pending orders can be approved")
	}
	if len(po.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot approve an order with no items")
	}
	po.Status = PurchaseOrderStatusApproved
	po.ApprovedBy = &approvedBy
	po.ApprovedAt = &at
	po.Touch()
	return nil
}

// MarkOrdered records that the approved order was sent to the supplier
func (po *PurchaseOrder) MarkOrdered() error {
	if po.Status != PurchaseOrderStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved orders can be marked as ordered")
	}
	po.Status = PurchaseOrderStatusOrdered
	po.Touch()
	return nil
}

// Receive records a delivery against the order. Quantities are added to each
// line's received tally, keyed by line item ID; a nil map receives every line
// in full. The order becomes Received once every line is fully delivered,
// stamping the received time, and Partially Received otherwise.
func (po *PurchaseOrder) Receive(quantities map[uuid.UUID]decimal.Decimal, at time.Time) error {
	switch po.Status {
	case PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered, PurchaseOrderStatusPartiallyReceived:
	default:
		return shared.NewDomainError("INVALID_STATE", "Only approved or ordered orders can be received")
	}

	if quantities == nil {
		for idx := range po.Items {
			po.Items[idx].ReceivedQuantity = po.Items[idx].Quantity
		}
	} else {
		byID := make(map[uuid.UUID]int, len(po.Items))
		for idx := range po.Items {
			byID[po.Items[idx].ID] = idx
		}
		for itemID, qty := range quantities {
			idx, ok := byID[itemID]
			if !ok {
				return shared.NewDomainError("ITEM_NOT_FOUND", "Receipt references an item not on this order")
			}
			if !qty.IsPositive() {
				return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
			}
			line := &po.Items[idx]
			total := line.ReceivedQuantity.Add(qty)
			if total.GreaterThan(line.Quantity) {
				return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot exceed the ordered quantity")
			}
			line.ReceivedQuantity = total
		}
	}

	if po.fullyReceived() {
		po.Status = PurchaseOrderStatusReceived
		t := at
		po.ReceivedAt = &t
	} else {
		po.Status = PurchaseOrderStatusPartiallyReceived
	}
	po.Touch()
	return nil
}

func (po *PurchaseOrder) fullyReceived() bool {
	for idx := range po.Items {
		if po.Items[idx].ReceivedQuantity.LessThan(po.Items[idx].Quantity) {
			return false
		}
	}
	return true
}

// Cancel voids the order. Received orders cannot be cancelled.
func (po *PurchaseOrder) Cancel() error {
	if po.Status == PurchaseOrderStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Received orders cannot be cancelled")
	}
	po.Status = PurchaseOrderStatusCancelled
	po.Touch()
	return nil
}

func (po *PurchaseOrder) isEditable() bool {
	return po.Status == PurchaseOrderStatusDraft || po.Status == PurchaseOrderStatusPending
}

// Recalculate recomputes all derived money fields from the line items
func (po *PurchaseOrder) Recalculate() {
	subtotal := decimal.Zero
	for idx := range po.Items {
		po.Items[idx].Recalculate()
		subtotal = subtotal.Add(po.Items[idx].Amount)
	}
	po.Subtotal = subtotal
	po.TaxAmount = subtotal.Mul(po.TaxRate).Div(decimal.NewFromInt(100))
	po.TotalAmount = subtotal.Add(po.TaxAmount)
}
