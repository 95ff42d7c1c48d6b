package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// MockQuotationRepository is a mock implementation of sales.QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[sales.Quotation], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.Quotation]), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, quotation *sales.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepository) NextNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockQuotationRepository) RevenueByMonth(ctx context.Context, start, end *time.Time) ([]sales.MonthlyRevenue, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.MonthlyRevenue), args.Error(1)
}

func (m *MockQuotationRepository) Stats(ctx context.Context) (*sales.QuotationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.QuotationStats), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of sales.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[sales.Invoice], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) FindRecent(ctx context.Context, limit int) ([]sales.Invoice, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) Stats(ctx context.Context) (*sales.InvoiceStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.InvoiceStats), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Client], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partner.Client]), args.Error(1)
}

func (m *MockClientRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]partner.ClientSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]partner.ClientSummary), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Stats(ctx context.Context) (*partner.ClientStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.ClientStats), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[identity.User], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[identity.User]), args.Error(1)
}

func (m *MockUserRepository) FindIDsByRole(ctx context.Context, roles ...identity.Role) ([]uuid.UUID, error) {
	callArgs := make([]interface{}, 0, len(roles)+1)
	callArgs = append(callArgs, ctx)
	for _, role := range roles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]identity.UserSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]identity.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Stats(ctx context.Context) (*identity.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserStats), args.Error(1)
}

// passthroughUnitOfWork runs the function directly, without a transaction
type passthroughUnitOfWork struct{}

func (passthroughUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func pendingQuotation(t *testing.T) *sales.Quotation {
	t.Helper()
	q, err := sales.NewQuotation(uuid.New(), uuid.New(), "Villa Renovation")
	require.NoError(t, err)
	q.QuotationNumber = "QT-2026-0007"
	_, err = q.AddItem("Modular Kitchen", "SCM", decimal.NewFromInt(120), decimal.NewFromInt(850))
	require.NoError(t, err)
	require.NoError(t, q.SetStatus(sales.QuotationStatusPending))
	return q
}

func TestQuotationServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates a number and saves", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("NextNumber", ctx, mock.AnythingOfType("int")).Return("QT-2026-0001", nil)
		quotationRepo.On("Save", ctx, mock.AnythingOfType("*sales.Quotation")).Return(nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		resp, err := svc.Create(ctx, CreateQuotationRequest{
			ClientID:    uuid.New(),
			ProjectName: "Villa Renovation",
			Items: []QuotationItemRequest{
				{ItemName: "Modular Kitchen", Quantity: decimal.NewFromInt(120), Rate: decimal.NewFromInt(850)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "QT-2026-0001", resp.QuotationNumber)
		assert.Equal(t, "Draft", resp.Status)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(102000)), "subtotal was %s", resp.Subtotal)
		quotationRepo.AssertExpectations(t)
	})

	t.Run("fails without a client", func(t *testing.T) {
		svc := NewQuotationService(new(MockQuotationRepository), new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		resp, err := svc.Create(ctx, CreateQuotationRequest{ProjectName: "Villa Renovation"})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestQuotationServiceApprove(t *testing.T) {
	ctx := context.Background()
	approver := uuid.New()

	t.Run("generates the invoice alongside the approval", func(t *testing.T) {
		q := pendingQuotation(t)
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)
		quotationRepo.On("Save", ctx, q).Return(nil)

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("NextNumber", ctx, mock.AnythingOfType("int")).Return("INV-2026-003", nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*sales.Invoice")).Return(nil)

		svc := NewQuotationService(quotationRepo, invoiceRepo, new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		result, err := svc.Approve(ctx, q.ID, approver)

		require.NoError(t, err)
		assert.Equal(t, "Approved", result.Quotation.Status)
		assert.Equal(t, approver, *result.Quotation.ApprovedBy)
		assert.Equal(t, "INV-2026-003", result.Invoice.InvoiceNumber)
		assert.Equal(t, q.ID, *result.Invoice.QuotationID)
		assert.Len(t, result.Invoice.Items, 1)
		quotationRepo.AssertExpectations(t)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("wraps invoice failures so the approval rolls back", func(t *testing.T) {
		q := pendingQuotation(t)
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)
		quotationRepo.On("Save", ctx, q).Return(nil)

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("NextNumber", ctx, mock.AnythingOfType("int")).Return("", errors.New("sequence unavailable"))

		svc := NewQuotationService(quotationRepo, invoiceRepo, new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		result, err := svc.Approve(ctx, q.ID, approver)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrApprovalFailed)
	})

	t.Run("refuses a second decision", func(t *testing.T) {
		q := pendingQuotation(t)
		require.NoError(t, q.Approve(uuid.New(), q.CreatedAt))

		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		_, err := svc.Approve(ctx, q.ID, approver)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestQuotationServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds client and user summaries", func(t *testing.T) {
		q := pendingQuotation(t)
		require.NoError(t, q.Approve(uuid.New(), q.CreatedAt))

		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)

		clientRepo := new(MockClientRepository)
		clientRepo.On("FindSummaries", ctx, []uuid.UUID{q.ClientID}).Return(map[uuid.UUID]partner.ClientSummary{
			q.ClientID: {ID: q.ClientID, Name: "Meridian Homes", Email: "contact@meridianhomes.example"},
		}, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindSummaries", ctx, mock.AnythingOfType("[]uuid.UUID")).Return(map[uuid.UUID]identity.UserSummary{
			*q.CreatedBy:  {ID: *q.CreatedBy, Name: "Asha Nair", Email: "asha@studio.example"},
			*q.ApprovedBy: {ID: *q.ApprovedBy, Name: "Ravi Menon", Email: "ravi@studio.example"},
		}, nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), clientRepo, userRepo, passthroughUnitOfWork{}, nil)

		resp, err := svc.GetByID(ctx, q.ID)

		require.NoError(t, err)
		require.NotNil(t, resp.Client)
		assert.Equal(t, "Meridian Homes", resp.Client.Name)
		require.NotNil(t, resp.CreatedByUser)
		assert.Equal(t, "Asha Nair", resp.CreatedByUser.Name)
		require.NotNil(t, resp.ApprovedByUser)
		assert.Equal(t, "Ravi Menon", resp.ApprovedByUser.Name)
		clientRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("leaves summaries empty for unknown references", func(t *testing.T) {
		q := pendingQuotation(t)
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)

		clientRepo := new(MockClientRepository)
		clientRepo.On("FindSummaries", ctx, mock.Anything).Return(map[uuid.UUID]partner.ClientSummary{}, nil)
		userRepo := new(MockUserRepository)
		userRepo.On("FindSummaries", ctx, mock.Anything).Return(map[uuid.UUID]identity.UserSummary{}, nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), clientRepo, userRepo, passthroughUnitOfWork{}, nil)

		resp, err := svc.GetByID(ctx, q.ID)

		require.NoError(t, err)
		assert.Nil(t, resp.Client)
		assert.Nil(t, resp.CreatedByUser)
		assert.Nil(t, resp.ApprovedByUser)
	})
}

func TestQuotationServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects edits after a decision", func(t *testing.T) {
		q := pendingQuotation(t)
		require.NoError(t, q.Approve(uuid.New(), q.CreatedAt))

		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		name := "Changed"
		_, err := svc.Update(ctx, q.ID, UpdateQuotationRequest{ProjectName: &name})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		quotationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replaces items and recomputes totals", func(t *testing.T) {
		q := pendingQuotation(t)
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)
		quotationRepo.On("Save", ctx, q).Return(nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		items := []QuotationItemRequest{
			{ItemName: "TV Unit", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(1000)},
		}
		resp, err := svc.Update(ctx, q.ID, UpdateQuotationRequest{Items: &items})

		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(10000)), "subtotal was %s", resp.Subtotal)
	})
}

func TestQuotationServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps approved quotations", func(t *testing.T) {
		q := pendingQuotation(t)
		require.NoError(t, q.Approve(uuid.New(), q.CreatedAt))

		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		err := svc.Delete(ctx, q.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		quotationRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes drafts", func(t *testing.T) {
		q := pendingQuotation(t)
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("FindByID", ctx, q.ID).Return(q, nil)
		quotationRepo.On("Delete", ctx, q.ID).Return(nil)

		svc := NewQuotationService(quotationRepo, new(MockInvoiceRepository), new(MockClientRepository), new(MockUserRepository), passthroughUnitOfWork{}, nil)

		require.NoError(t, svc.Delete(ctx, q.ID))
		quotationRepo.AssertExpectations(t)
	})
}
