package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/sales"
)

// QuotationItemRequest represents one line item in a quotation payload
type QuotationItemRequest struct {
	ItemName    string          `json:"itemName" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	Section     string          `json:"section" binding:"max=100"`
	Finish      string          `json:"finish" binding:"max=100"`
	Material    string          `json:"material" binding:"max=100"`
	Unit        string          `json:"unit" binding:"max=20"`
	Size        string          `json:"size" binding:"max=100"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	Image       string          `json:"image"`
}

// CreateQuotationRequest represents a request to create a quotation
type CreateQuotationRequest struct {
	ClientID           uuid.UUID              `json:"clientId" binding:"required"`
	ProjectName        string                 `json:"projectName" binding:"required,min=1,max=200"`
	ProjectType        string                 `json:"projectType" binding:"omitempty,oneof=Residential Commercial Hospitality Retail Other"`
	Items              []QuotationItemRequest `json:"items"`
	TaxRate            *decimal.Decimal       `json:"taxRate"`
	Discount           *decimal.Decimal       `json:"discount"`
	ValidUntil         *time.Time             `json:"validUntil"`
	Notes              string                 `json:"notes"`
	TermsAndConditions string                 `json:"termsAndConditions"`
	CreatedBy          *uuid.UUID             `json:"-"`
}

// UpdateQuotationRequest represents a partial update to a quotation
type UpdateQuotationRequest struct {
	ClientID           *uuid.UUID              `json:"clientId"`
	ProjectName        *string                 `json:"projectName" binding:"omitempty,min=1,max=200"`
	ProjectType        *string                 `json:"projectType" binding:"omitempty,oneof=Residential Commercial Hospitality Retail Other"`
	Items              *[]QuotationItemRequest `json:"items"`
	TaxRate            *decimal.Decimal        `json:"taxRate"`
	Discount           *decimal.Decimal        `json:"discount"`
	Status             *string                 `json:"status" binding:"omitempty,oneof=Draft Sent Pending Expired"`
	ValidUntil         *time.Time              `json:"validUntil"`
	Notes              *string                 `json:"notes"`
	TermsAndConditions *string                 `json:"termsAndConditions"`
}

// QuotationItemResponse represents a quotation line item in API responses
type QuotationItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Section     string          `json:"section"`
	Finish      string          `json:"finish"`
	Material    string          `json:"material"`
	Unit        string          `json:"unit"`
	Size        string          `json:"size"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Image       string          `json:"image"`
}

// QuotationResponse represents a quotation in API responses. The summary
// fields are resolved on single-record reads and omitted from lists.
type QuotationResponse struct {
	ID                 uuid.UUID               `json:"id"`
	QuotationNumber    string                  `json:"quotationNumber"`
	ClientID           uuid.UUID               `json:"clientId"`
	Client             *partner.ClientSummary  `json:"client,omitempty"`
	CreatedByUser      *identity.UserSummary   `json:"createdByUser,omitempty"`
	ApprovedByUser     *identity.UserSummary   `json:"approvedByUser,omitempty"`
	ProjectName        string                  `json:"projectName"`
	ProjectType        string                  `json:"projectType"`
	Items              []QuotationItemResponse `json:"items"`
	Subtotal           decimal.Decimal         `json:"subtotal"`
	TaxRate            decimal.Decimal         `json:"taxRate"`
	TaxAmount          decimal.Decimal         `json:"taxAmount"`
	Discount           decimal.Decimal         `json:"discount"`
	TotalAmount        decimal.Decimal         `json:"totalAmount"`
	Status             string                  `json:"status"`
	ValidUntil         *time.Time              `json:"validUntil"`
	Notes              string                  `json:"notes"`
	TermsAndConditions string                  `json:"termsAndConditions"`
	ApprovedBy         *uuid.UUID              `json:"approvedBy"`
	ApprovedAt         *time.Time              `json:"approvedAt"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// ToQuotationResponse maps a domain quotation to its API representation
func ToQuotationResponse(q *sales.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuotationItemResponse{
			ID:          item.ID,
			ItemName:    item.ItemName,
			Description: item.Description,
			Section:     item.Section,
			Finish:      item.Finish,
			Material:    item.Material,
			Unit:        item.Unit,
			Size:        item.Size,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
			Image:       item.Image,
		}
	}
	return QuotationResponse{
		ID:                 q.ID,
		QuotationNumber:    q.QuotationNumber,
		ClientID:           q.ClientID,
		ProjectName:        q.ProjectName,
		ProjectType:        string(q.ProjectType),
		Items:              items,
		Subtotal:           q.Subtotal,
		TaxRate:            q.TaxRate,
		TaxAmount:          q.TaxAmount,
		Discount:           q.Discount,
		TotalAmount:        q.TotalAmount,
		Status:             string(q.Status),
		ValidUntil:         q.ValidUntil,
		Notes:              q.Notes,
		TermsAndConditions: q.TermsAndConditions,
		ApprovedBy:         q.ApprovedBy,
		ApprovedAt:         q.ApprovedAt,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

// ApproveQuotationResult carries both sides of an approval
type ApproveQuotationResult struct {
	Quotation QuotationResponse `json:"quotation"`
	Invoice   InvoiceResponse   `json:"invoice"`
}

// InvoiceItemRequest represents one line item in an invoice payload
type InvoiceItemRequest struct {
	Description string           `json:"description" binding:"required,min=1"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	Rate        decimal.Decimal  `json:"rate" binding:"required"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
}

// CreateInvoiceRequest represents a request to create an invoice directly
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID            `json:"clientId" binding:"required"`
	QuotationID *uuid.UUID           `json:"quotationId"`
	ProjectName string               `json:"projectName" binding:"required,min=1,max=200"`
	Items       []InvoiceItemRequest `json:"items" binding:"required,min=1"`
	IssueDate   *time.Time           `json:"issueDate"`
	DueDate     *time.Time           `json:"dueDate"`
	Notes       string               `json:"notes"`
	CreatedBy   *uuid.UUID           `json:"-"`
}

// UpdateInvoiceRequest represents a partial update to an invoice
type UpdateInvoiceRequest struct {
	ProjectName *string               `json:"projectName" binding:"omitempty,min=1,max=200"`
	Items       *[]InvoiceItemRequest `json:"items" binding:"omitempty,min=1"`
	DueDate     *time.Time            `json:"dueDate"`
	Notes       *string               `json:"notes"`
}

// RecordPaymentRequest applies a payment to an invoice
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=Cash Cheque 'Bank Transfer' UPI Card"`
	PaidAt        *time.Time      `json:"paidAt"`
}

// InvoiceItemResponse represents an invoice line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses. The summary fields
// are resolved on single-record reads and omitted from lists.
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	ClientID      uuid.UUID             `json:"clientId"`
	Client        *partner.ClientSummary `json:"client,omitempty"`
	CreatedByUser *identity.UserSummary  `json:"createdByUser,omitempty"`
	QuotationID   *uuid.UUID            `json:"quotationId"`
	ProjectName   string                `json:"projectName"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TotalTax      decimal.Decimal       `json:"totalTax"`
	GrandTotal    decimal.Decimal       `json:"grandTotal"`
	AmountPaid    decimal.Decimal       `json:"amountPaid"`
	Balance       decimal.Decimal       `json:"balance"`
	Status        string                `json:"status"`
	IssueDate     time.Time             `json:"issueDate"`
	DueDate       time.Time             `json:"dueDate"`
	PaymentMethod *string               `json:"paymentMethod"`
	PaidAt        *time.Time            `json:"paidAt"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ToInvoiceResponse maps a domain invoice to its API representation
func ToInvoiceResponse(inv *sales.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			TaxRate:     item.TaxRate,
			Amount:      item.Amount,
		}
	}
	var method *string
	if inv.PaymentMethod != nil {
		m := string(*inv.PaymentMethod)
		method = &m
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		QuotationID:   inv.QuotationID,
		ProjectName:   inv.ProjectName,
		Items:         items,
		Subtotal:      inv.Subtotal,
		TotalTax:      inv.TotalTax,
		GrandTotal:    inv.GrandTotal,
		AmountPaid:    inv.AmountPaid,
		Balance:       inv.Balance(),
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaymentMethod: method,
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
