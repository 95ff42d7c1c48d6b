package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// InvoiceStatus represents the payment lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusSent          InvoiceStatus = "Sent"
	InvoiceStatusUnpaid        InvoiceStatus = "Unpaid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
	InvoiceStatusCancelled     InvoiceStatus = "Cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusUnpaid, InvoiceStatusPaid,
		InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCheque       PaymentMethod = "Cheque"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodCard         PaymentMethod = "Card"
)

// IsValid checks if the payment method is one of the allowed values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer,
		PaymentMethodUPI, PaymentMethodCard:
		return true
	}
	return false
}

// InvoiceItem represents a line item in an invoice
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(8,4);not null;default:18"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Recalculate recomputes the line amount from quantity and rate
func (i *InvoiceItem) Recalculate() {
	i.Amount = i.Quantity.Mul(i.Rate)
}

// TaxPortion returns the tax owed on this line
func (i *InvoiceItem) TaxPortion() decimal.Decimal {
	return i.Amount.Mul(i.TaxRate).Div(decimal.NewFromInt(100))
}

// Invoice represents a bill issued to a client, usually born from an approved
// quotation. Its totals and payment status are derived fields recomputed
// before every persist.
type Invoice struct {
	shared.OwnedEntity
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuotationID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProjectName   string          `gorm:"type:varchar(200);not null"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'Draft';index"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       time.Time       `gorm:"not null"`
	PaymentMethod *PaymentMethod  `gorm:"type:varchar(20)"`
	PaidAt        *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice
func NewInvoice(createdBy, clientID uuid.UUID, projectName string, issueDate, dueDate time.Time) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Please select a client")
	}
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Please provide a project name")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the issue date")
	}

	return &Invoice{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		ClientID:    clientID,
		ProjectName: projectName,
		Status:      InvoiceStatusDraft,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Items:       make([]InvoiceItem, 0),
	}, nil
}

// NewInvoiceFromQuotation builds a draft invoice carrying over the approved
// quotation's client, project and line items. The invoice is due fifteen days
// after issue.
func NewInvoiceFromQuotation(q *Quotation, createdBy uuid.UUID, issueDate time.Time) (*Invoice, error) {
	if q.Status != QuotationStatusApproved {
		return nil, shared.NewDomainError("INVALID_STATE", "Only approved quotations can be invoiced")
	}

	inv, err := NewInvoice(createdBy, q.ClientID, q.ProjectName, issueDate, issueDate.AddDate(0, 0, 15))
	if err != nil {
		return nil, err
	}
	qid := q.ID
	inv.QuotationID = &qid

	items := make([]InvoiceItem, 0, len(q.Items))
	for _, line := range q.Items {
		desc := line.ItemName
		if line.Description != "" {
			desc = desc + " - " + line.Description
		}
		qty := line.Quantity
		if qty.LessThan(decimal.NewFromInt(1)) {
			qty = decimal.NewFromInt(1)
		}
		items = append(items, InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			Description: desc,
			Quantity:    qty,
			Rate:        line.Rate,
			TaxRate:     q.TaxRate,
		})
	}
	inv.Items = items
	inv.Recalculate(issueDate)
	return inv, nil
}

// AddItem appends a line item and recomputes totals
func (inv *Invoice) AddItem(description string, quantity, rate, taxRate decimal.Decimal, now time.Time) (*InvoiceItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	item := InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   inv.ID,
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		TaxRate:     taxRate,
	}
	item.Recalculate()
	inv.Items = append(inv.Items, item)
	inv.Recalculate(now)
	inv.Touch()
	return &inv.Items[len(inv.Items)-1], nil
}

// ReplaceItems swaps the full line-item list and recomputes totals
func (inv *Invoice) ReplaceItems(items []InvoiceItem, now time.Time) error {
	one := decimal.NewFromInt(1)
	for idx := range items {
		if items[idx].Quantity.LessThan(one) {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if items[idx].ID == uuid.Nil {
			items[idx].ID = uuid.New()
		}
		items[idx].InvoiceID = inv.ID
		items[idx].Recalculate()
	}
	inv.Items = items
	inv.Recalculate(now)
	inv.Touch()
	return nil
}

// RecordPayment applies a payment against the invoice. The derived payment
// status is recomputed; a fully settled invoice is stamped with the payment
// method and time.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, method PaymentMethod, at time.Time) error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record a payment on a cancelled invoice")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.PaymentMethod = &method
	inv.Recalculate(at)
	if inv.Status == InvoiceStatusPaid && inv.PaidAt == nil {
		t := at
		inv.PaidAt = &t
	}
	inv.Touch()
	return nil
}

// Cancel voids the invoice. Paid invoices cannot be cancelled.
func (inv *Invoice) Cancel() error {
	if inv.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	inv.Status = InvoiceStatusCancelled
	inv.Touch()
	return nil
}

// Balance returns the outstanding amount
func (inv *Invoice) Balance() decimal.Decimal {
	return inv.GrandTotal.Sub(inv.AmountPaid)
}

// Recalculate recomputes all derived money fields and the payment status.
// Status precedence: fully paid wins over everything, a partial payment wins
// over overdue, and an unpaid invoice past its due date becomes Overdue.
func (inv *Invoice) Recalculate(now time.Time) {
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for idx := range inv.Items {
		inv.Items[idx].Recalculate()
		subtotal = subtotal.Add(inv.Items[idx].Amount)
		totalTax = totalTax.Add(inv.Items[idx].TaxPortion())
	}
	inv.Subtotal = subtotal
	inv.TotalTax = totalTax
	inv.GrandTotal = subtotal.Add(totalTax)

	if inv.Status == InvoiceStatusCancelled {
		return
	}
	switch {
	case inv.AmountPaid.GreaterThanOrEqual(inv.GrandTotal):
		inv.Status = InvoiceStatusPaid
	case inv.AmountPaid.IsPositive():
		inv.Status = InvoiceStatusPartiallyPaid
	case inv.DueDate.Before(now):
		inv.Status = InvoiceStatusOverdue
	}
}
