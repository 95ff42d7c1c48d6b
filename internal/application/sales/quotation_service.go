package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	notifysvc "github.com/studioerp/backend/internal/application/notify"
	"github.com/studioerp/backend/internal/domain/identity"
	domnotify "github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// QuotationService handles quotation business operations
type QuotationService struct {
	quotationRepo sales.QuotationRepository
	invoiceRepo   sales.InvoiceRepository
	clientRepo    partner.ClientRepository
	userRepo      identity.UserRepository
	uow           shared.UnitOfWork
	notifier      *notifysvc.Notifier
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotationRepo sales.QuotationRepository,
	invoiceRepo sales.InvoiceRepository,
	clientRepo partner.ClientRepository,
	userRepo identity.UserRepository,
	uow shared.UnitOfWork,
	notifier *notifysvc.Notifier,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		clientRepo:    clientRepo,
		userRepo:      userRepo,
		uow:           uow,
		notifier:      notifier,
	}
}

// Create creates a new quotation with an allocated document number
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	quotation, err := sales.NewQuotation(createdBy, req.ClientID, req.ProjectName)
	if err != nil {
		return nil, err
	}
	if req.ProjectType != "" {
		quotation.ProjectType = sales.ProjectType(req.ProjectType)
	}
	quotation.ValidUntil = req.ValidUntil
	quotation.Notes = req.Notes
	quotation.TermsAndConditions = req.TermsAndConditions

	if req.TaxRate != nil {
		if err := quotation.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := quotation.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	quotation.ReplaceItems(toQuotationItems(req.Items))

	number, err := s.quotationRepo.NextNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}
	quotation.QuotationNumber = number

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByID retrieves a quotation by ID with its client and user references
// resolved to summaries
func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToQuotationResponse(quotation)

	clients, err := s.clientRepo.FindSummaries(ctx, []uuid.UUID{quotation.ClientID})
	if err != nil {
		return nil, err
	}
	if c, ok := clients[quotation.ClientID]; ok {
		response.Client = &c
	}

	userIDs := make([]uuid.UUID, 0, 2)
	if quotation.CreatedBy != nil {
		userIDs = append(userIDs, *quotation.CreatedBy)
	}
	if quotation.ApprovedBy != nil {
		userIDs = append(userIDs, *quotation.ApprovedBy)
	}
	users, err := s.userRepo.FindSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if quotation.CreatedBy != nil {
		if u, ok := users[*quotation.CreatedBy]; ok {
			response.CreatedByUser = &u
		}
	}
	if quotation.ApprovedBy != nil {
		if u, ok := users[*quotation.ApprovedBy]; ok {
			response.ApprovedByUser = &u
		}
	}
	return &response, nil
}

// List retrieves quotations with filtering and pagination
func (s *QuotationService) List(ctx context.Context, filter shared.Filter) ([]QuotationResponse, *shared.Paginated[sales.Quotation], error) {
	page, err := s.quotationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]QuotationResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToQuotationResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to a quotation
func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req UpdateQuotationRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Approved or rejected quotations cannot be edited")
	}

	if req.ClientID != nil {
		if *req.ClientID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_CLIENT", "Please select a client")
		}
		quotation.ClientID = *req.ClientID
	}
	if req.ProjectName != nil {
		quotation.ProjectName = *req.ProjectName
	}
	if req.ProjectType != nil {
		quotation.ProjectType = sales.ProjectType(*req.ProjectType)
	}
	if req.TaxRate != nil {
		if err := quotation.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := quotation.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		quotation.ReplaceItems(toQuotationItems(*req.Items))
	}
	if req.Status != nil {
		if err := quotation.SetStatus(sales.QuotationStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		quotation.ValidUntil = req.ValidUntil
	}
	if req.Notes != nil {
		quotation.Notes = *req.Notes
	}
	if req.TermsAndConditions != nil {
		quotation.TermsAndConditions = *req.TermsAndConditions
	}
	quotation.Touch()

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Approve marks the quotation approved and generates its invoice inside a
// single transaction. If the invoice cannot be created the approval is rolled
// back and the quotation stays in its previous status.
func (s *QuotationService) Approve(ctx context.Context, id, approvedBy uuid.UUID) (*ApproveQuotationResult, error) {
	now := time.Now()

	var quotation *sales.Quotation
	var invoice *sales.Invoice
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		quotation, err = s.quotationRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := quotation.Approve(approvedBy, now); err != nil {
			return err
		}
		if err := s.quotationRepo.Save(ctx, quotation); err != nil {
			return err
		}

		invoice, err = sales.NewInvoiceFromQuotation(quotation, approvedBy, now)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrApprovalFailed, err)
		}
		number, err := s.invoiceRepo.NextNumber(ctx, now.Year())
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrApprovalFailed, err)
		}
		invoice.InvoiceNumber = number
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrApprovalFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if quotation.CreatedBy != nil && *quotation.CreatedBy != approvedBy {
			s.notifier.NotifyUser(ctx, *quotation.CreatedBy,
				domnotify.NotificationTypeQuote,
				"Quotation approved",
				fmt.Sprintf("Quotation %s was approved and invoice %s was generated", quotation.QuotationNumber, invoice.InvoiceNumber),
				domnotify.RelatedModelQuotation, quotation.ID)
		}
		s.notifier.NotifyRoles(ctx, []identity.Role{identity.RoleSuperAdmin, identity.RoleAdmin},
			domnotify.NotificationTypeInvoice,
			"Invoice generated",
			fmt.Sprintf("Invoice %s was generated from quotation %s", invoice.InvoiceNumber, quotation.QuotationNumber),
			domnotify.RelatedModelInvoice, invoice.ID)
	}

	return &ApproveQuotationResult{
		Quotation: ToQuotationResponse(quotation),
		Invoice:   ToInvoiceResponse(invoice),
	}, nil
}

// Reject marks the quotation rejected
func (s *QuotationService) Reject(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := quotation.Reject(); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	if s.notifier != nil && quotation.CreatedBy != nil {
		s.notifier.NotifyUser(ctx, *quotation.CreatedBy,
			domnotify.NotificationTypeQuote,
			"Quotation rejected",
			fmt.Sprintf("Quotation %s was rejected", quotation.QuotationNumber),
			domnotify.RelatedModelQuotation, quotation.ID)
	}

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Delete removes a quotation. Approved quotations are kept for the audit
// trail and cannot be deleted.
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if quotation.Status == sales.QuotationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Approved quotations cannot be deleted")
	}
	return s.quotationRepo.Delete(ctx, id)
}

// Stats returns quotation counts and value by status
func (s *QuotationService) Stats(ctx context.Context) (*sales.QuotationStats, error) {
	return s.quotationRepo.Stats(ctx)
}

func toQuotationItems(reqs []QuotationItemRequest) []sales.QuotationItem {
	items := make([]sales.QuotationItem, len(reqs))
	for i, r := range reqs {
		items[i] = sales.QuotationItem{
			ItemName:    r.ItemName,
			Description: r.Description,
			Section:     r.Section,
			Finish:      r.Finish,
			Material:    r.Material,
			Unit:        r.Unit,
			Size:        r.Size,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			Image:       r.Image,
		}
		if items[i].Unit == "" {
			items[i].Unit = "SCM"
		}
	}
	return items
}
