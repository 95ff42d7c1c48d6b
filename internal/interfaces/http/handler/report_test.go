package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	reportapp "github.com/studioerp/backend/internal/application/report"
	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

// MockQuotationRepository implements sales.QuotationRepository for testing
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

func setupReportRouter(quotationRepo *MockQuotationRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	svc := reportapp.NewReportService(nil, nil, nil, quotationRepo, nil, nil, nil, nil, nil)
	handler := NewReportHandler(svc)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestReportHandler_Revenue(t *testing.T) {
	t.Run("passes the approval date range through", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		quotationRepo.On("RevenueByMonth", mock.Anything, &start, &end).Return([]sales.MonthlyRevenue{
			{Year: 2026, Month: 3, Revenue: decimal.NewFromInt(2360), Count: 2},
		}, nil)

		router := setupReportRouter(quotationRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?startDate=2026-01-01&endDate=2026-06-30", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []struct {
				Year  int `json:"year"`
				Month int `json:"month"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, 2026, body.Data[0].Year)
		assert.Equal(t, 3, body.Data[0].Month)
		quotationRepo.AssertExpectations(t)
	})

	t.Run("leaves the range open without params", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		quotationRepo.On("RevenueByMonth", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
			Return([]sales.MonthlyRevenue{}, nil)

		router := setupReportRouter(quotationRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		quotationRepo.AssertExpectations(t)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		router := setupReportRouter(quotationRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?startDate=March", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		quotationRepo.AssertNotCalled(t, "RevenueByMonth", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		router := setupReportRouter(quotationRepo)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?startDate=2026-06-01&endDate=2026-01-01", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		quotationRepo.AssertNotCalled(t, "RevenueByMonth", mock.Anything, mock.Anything, mock.Anything)
	})
}
