package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/studioerp/backend/internal/domain/shared"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusPending  QuotationStatus = "Pending"
	QuotationStatusApproved QuotationStatus = "Approved"
	QuotationStatusRejected QuotationStatus = "Rejected"
	QuotationStatusExpired  QuotationStatus = "Expired"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusPending,
		QuotationStatusApproved, QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further decision
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusApproved || s == QuotationStatusRejected || s == QuotationStatusExpired
}

// ProjectType represents the kind of project a quotation covers
type ProjectType string

const (
	ProjectTypeResidential ProjectType = "Residential"
	ProjectTypeCommercial  ProjectType = "Commercial"
	ProjectTypeHospitality ProjectType = "Hospitality"
	ProjectTypeRetail      ProjectType = "Retail"
	ProjectTypeOther       ProjectType = "Other"
)

// IsValid checks if the project type is one of the allowed values
func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeResidential, ProjectTypeCommercial, ProjectTypeHospitality,
		ProjectTypeRetail, ProjectTypeOther:
		return true
	}
	return false
}

// QuotationItem represents a line item in a quotation
type QuotationItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName    string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Section     string          `gorm:"type:varchar(100)"`
	Finish      string          `gorm:"type:varchar(100)"`
	Material    string          `gorm:"type:varchar(100)"`
	Unit        string          `gorm:"type:varchar(20);not null;default:'SCM'"`
	Size        string          `gorm:"type:varchar(100)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Image       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// Recalculate recomputes the line amount from quantity and rate
func (i *QuotationItem) Recalculate() {
	i.Amount = i.Quantity.Mul(i.Rate)
}

// Quotation represents a priced project proposal for a client.
// It is the aggregate root for the quotation lifecycle; all money totals are
// derived fields recomputed before every persist.
type Quotation struct {
	shared.OwnedEntity
	QuotationNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectName        string          `gorm:"type:varchar(200);not null"`
	ProjectType        ProjectType     `gorm:"type:varchar(20);not null;default:'Residential'"`
	Items              []QuotationItem `gorm:"foreignKey:QuotationID;references:ID"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(8,4);not null;default:18"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status             QuotationStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	ValidUntil         *time.Time
	Notes              string     `gorm:"type:text"`
	TermsAndConditions string     `gorm:"type:text"`
	ApprovedBy         *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt         *time.Time
}

// TableName returns the table name for GORM
func (Quotation) TableName() string {
	return "quotations"
}

// NewQuotation creates a new draft quotation
func NewQuotation(createdBy, clientID uuid.UUID, projectName string) (*Quotation, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Please select a client")
	}
	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Please provide a project name")
	}

	return &Quotation{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		ClientID:    clientID,
		ProjectName: projectName,
		ProjectType: ProjectTypeResidential,
		TaxRate:     decimal.NewFromInt(18),
		Status:      QuotationStatusDraft,
		Items:       make([]QuotationItem, 0),
	}, nil
}

// AddItem appends a line item and recomputes totals
func (q *Quotation) AddItem(itemName, unit string, quantity, rate decimal.Decimal) (*QuotationItem, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if unit == "" {
		unit = "SCM"
	}

	item := QuotationItem{
		ID:          uuid.New(),
		QuotationID: q.ID,
		ItemName:    itemName,
		Unit:        unit,
		Quantity:    quantity,
		Rate:        rate,
	}
	item.Recalculate()
	q.Items = append(q.Items, item)
	q.Recalculate()
	q.Touch()
	return &q.Items[len(q.Items)-1], nil
}

// ReplaceItems swaps the full line-item list and recomputes totals
func (q *Quotation) ReplaceItems(items []QuotationItem) {
	for idx := range items {
		if items[idx].ID == uuid.Nil {
			items[idx].ID = uuid.New()
		}
		items[idx].QuotationID = q.ID
		items[idx].Recalculate()
	}
	q.Items = items
	q.Recalculate()
	q.Touch()
}

// SetTaxRate updates the tax rate and recomputes totals
func (q *Quotation) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	q.TaxRate = rate
	q.Recalculate()
	q.Touch()
	return nil
}

// SetDiscount updates the discount and recomputes totals
func (q *Quotation) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	q.Discount = discount
	q.Recalculate()
	q.Touch()
	return nil
}

// SetStatus moves the quotation to a non-decision status. Approve and Reject
// have their own transitions so the decision stamps cannot be bypassed.
func (q *Quotation) SetStatus(status QuotationStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown quotation status")
	}
	if status == QuotationStatusApproved || status == QuotationStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Approval and rejection go through their dedicated transitions")
	}
	q.Status = status
	q.Touch()
	return nil
}

// Approve marks the quotation approved, stamping the approver and time.
// Only allowed while no terminal decision has been made.
func (q *Quotation) Approve(approvedBy uuid.UUID, at time.Time) error {
	if q.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Quotation has already been decided")
	}
	q.Status = QuotationStatusApproved
	q.ApprovedBy = &approvedBy
	q.ApprovedAt = &at
	q.Touch()
	return nil
}

// Reject marks the quotation rejected
func (q *Quotation) Reject() error {
	if q.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Quotation has already been decided")
	}
	q.Status = QuotationStatusRejected
	q.Touch()
	return nil
}

// Recalculate recomputes all derived money fields top-down from the line
// items. Caller-supplied totals are never trusted; this runs before every
// persist.
func (q *Quotation) Recalculate() {
	subtotal := decimal.Zero
	for idx := range q.Items {
		q.Items[idx].Recalculate()
		subtotal = subtotal.Add(q.Items[idx].Amount)
	}
	q.Subtotal = subtotal
	q.TaxAmount = subtotal.Mul(q.TaxRate).Div(decimal.NewFromInt(100))
	q.TotalAmount = subtotal.Add(q.TaxAmount).Sub(q.Discount)
}
