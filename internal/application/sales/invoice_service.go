package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	notifysvc "github.com/studioerp/backend/internal/application/notify"
	"github.com/studioerp/backend/internal/domain/identity"
	domnotify "github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo sales.InvoiceRepository
	clientRepo  partner.ClientRepository
	userRepo    identity.UserRepository
	notifier    *notifysvc.Notifier
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo sales.InvoiceRepository,
	clientRepo partner.ClientRepository,
	userRepo identity.UserRepository,
	notifier *notifysvc.Notifier,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Create creates a standalone invoice with an allocated document number
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	now := time.Now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := issueDate.AddDate(0, 0, 15)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice, err := sales.NewInvoice(createdBy, req.ClientID, req.ProjectName, issueDate, dueDate)
	if err != nil {
		return nil, err
	}
	invoice.QuotationID = req.QuotationID
	invoice.Notes = req.Notes
	if err := invoice.ReplaceItems(toInvoiceItems(req.Items), now); err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(ctx, issueDate.Year())
	if err != nil {
		return nil, err
	}
	invoice.InvoiceNumber = number

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID with its client and creator references
// resolved to summaries
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)

	clients, err := s.clientRepo.FindSummaries(ctx, []uuid.UUID{invoice.ClientID})
	if err != nil {
		return nil, err
	}
	if c, ok := clients[invoice.ClientID]; ok {
		response.Client = &c
	}

	if invoice.CreatedBy != nil {
		users, err := s.userRepo.FindSummaries(ctx, []uuid.UUID{*invoice.CreatedBy})
		if err != nil {
			return nil, err
		}
		if u, ok := users[*invoice.CreatedBy]; ok {
			response.CreatedByUser = &u
		}
	}
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) ([]InvoiceResponse, *shared.Paginated[sales.Invoice], error) {
	page, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]InvoiceResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToInvoiceResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to an invoice
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == sales.InvoiceStatusPaid || invoice.Status == sales.InvoiceStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Paid or cancelled invoices cannot be edited")
	}

	now := time.Now()
	if req.ProjectName != nil {
		invoice.ProjectName = *req.ProjectName
	}
	if req.DueDate != nil {
		if req.DueDate.Before(invoice.IssueDate) {
			return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the issue date")
		}
		invoice.DueDate = *req.DueDate
	}
	if req.Items != nil {
		if err := invoice.ReplaceItems(toInvoiceItems(*req.Items), now); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	invoice.Recalculate(now)
	invoice.Touch()

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RecordPayment applies a payment to an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.PaidAt != nil {
		at = *req.PaidAt
	}
	if err := invoice.RecordPayment(req.Amount, sales.PaymentMethod(req.PaymentMethod), at); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	if s.notifier != nil && invoice.Status == sales.InvoiceStatusPaid && invoice.CreatedBy != nil {
		s.notifier.NotifyUser(ctx, *invoice.CreatedBy,
			domnotify.NotificationTypeInvoice,
			"Invoice paid",
			fmt.Sprintf("Invoice %s has been settled in full", invoice.InvoiceNumber),
			domnotify.RelatedModelInvoice, invoice.ID)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel voids an invoice
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes an invoice. Invoices with payments recorded are kept for the
// audit trail and cannot be deleted.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice.AmountPaid.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Invoices with recorded payments cannot be deleted")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// Stats returns invoice counts and money aggregates
func (s *InvoiceService) Stats(ctx context.Context) (*sales.InvoiceStats, error) {
	return s.invoiceRepo.Stats(ctx)
}

func toInvoiceItems(reqs []InvoiceItemRequest) []sales.InvoiceItem {
	items := make([]sales.InvoiceItem, len(reqs))
	for i, r := range reqs {
		taxRate := decimal.NewFromInt(18)
		if r.TaxRate != nil {
			taxRate = *r.TaxRate
		}
		items[i] = sales.InvoiceItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			TaxRate:     taxRate,
		}
	}
	return items
}
