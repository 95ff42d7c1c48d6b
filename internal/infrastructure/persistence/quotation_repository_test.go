package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/sales"
	"github.com/studioerp/backend/internal/domain/shared"
)

func setupQuotationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sales.Quotation{}, &sales.QuotationItem{}, &DocumentSequence{}))
	return db
}

func newTestQuotation(t *testing.T, number string) *sales.Quotation {
	t.Helper()
	quotation, err := sales.NewQuotation(uuid.New(), uuid.New(), "Lakeview Apartment")
	require.NoError(t, err)
	quotation.QuotationNumber = number
	_, err = quotation.AddItem("Modular Kitchen", "SCM", decimal.NewFromInt(40), decimal.NewFromInt(1200))
	require.NoError(t, err)
	_, err = quotation.AddItem("Wardrobe", "SCM", decimal.NewFromInt(25), decimal.NewFromInt(950))
	require.NoError(t, err)
	return quotation
}

func TestQuotationRepository_SaveAndFind(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()

	t.Run("round-trips a quotation with items", func(t *testing.T) {
		quotation := newTestQuotation(t, "QT-2026-0001")
		require.NoError(t, repo.Save(ctx, quotation))

		found, err := repo.FindByID(ctx, quotation.ID)
		require.NoError(t, err)
		assert.Equal(t, "QT-2026-0001", found.QuotationNumber)
		require.Len(t, found.Items, 2)
		assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(71750)))
		assert.True(t, found.TotalAmount.Equal(quotation.TotalAmount))
	})

	t.Run("save removes dropped line items", func(t *testing.T) {
		quotation := newTestQuotation(t, "QT-2026-0002")
		require.NoError(t, repo.Save(ctx, quotation))

		quotation.ReplaceItems([]sales.QuotationItem{{
			ItemName: "False Ceiling",
			Unit:     "SFT",
			Quantity: decimal.NewFromInt(300),
			Rate:     decimal.NewFromInt(85),
		}})
		require.NoError(t, repo.Save(ctx, quotation))

		found, err := repo.FindByID(ctx, quotation.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "False Ceiling", found.Items[0].ItemName)

		var orphans int64
		require.NoError(t, db.Model(&sales.QuotationItem{}).
			Where("quotation_id = ?", quotation.ID).
			Count(&orphans).Error)
		assert.Equal(t, int64(1), orphans)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestQuotationRepository_Delete(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()

	quotation := newTestQuotation(t, "QT-2026-0003")
	require.NoError(t, repo.Save(ctx, quotation))

	require.NoError(t, repo.Delete(ctx, quotation.ID))

	_, err := repo.FindByID(ctx, quotation.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var remaining int64
	require.NoError(t, db.Model(&sales.QuotationItem{}).
		Where("quotation_id = ?", quotation.ID).
		Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)

	assert.ErrorIs(t, repo.Delete(ctx, quotation.ID), shared.ErrNotFound)
}

func TestQuotationRepository_NextNumber(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()

	t.Run("allocates sequential numbers", func(t *testing.T) {
		first, err := repo.NextNumber(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "QT-2026-0001", first)

		second, err := repo.NextNumber(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "QT-2026-0002", second)
	})

	t.Run("counters are independent per year", func(t *testing.T) {
		number, err := repo.NextNumber(ctx, 2027)
		require.NoError(t, err)
		assert.Equal(t, "QT-2027-0001", number)
	})

	t.Run("counters are independent per document type", func(t *testing.T) {
		invoices := NewGormInvoiceRepository(db)
		number, err := invoices.NextNumber(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, "INV-2026-001", number)
	})
}

func TestQuotationRepository_RevenueByMonth(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()

	approve := func(t *testing.T, number string, qty, rate int64, at time.Time) {
		t.Helper()
		quotation, err := sales.NewQuotation(uuid.New(), uuid.New(), "Lakeview Apartment")
		require.NoError(t, err)
		quotation.QuotationNumber = number
		_, err = quotation.AddItem("Modular Kitchen", "SCM", decimal.NewFromInt(qty), decimal.NewFromInt(rate))
		require.NoError(t, err)
		require.NoError(t, quotation.Approve(uuid.New(), at))
		require.NoError(t, repo.Save(ctx, quotation))
	}

	// 10*100 plus 18% tax = 1180 per quotation
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	approve(t, "QT-2026-0021", 10, 100, march)
	approve(t, "QT-2026-0022", 10, 100, march.AddDate(0, 0, 5))
	approve(t, "QT-2026-0023", 10, 100, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))

	// still pending, must not count
	pending := newTestQuotation(t, "QT-2026-0024")
	require.NoError(t, pending.SetStatus(sales.QuotationStatusPending))
	require.NoError(t, repo.Save(ctx, pending))

	t.Run("buckets approved value by month, newest first", func(t *testing.T) {
		revenue, err := repo.RevenueByMonth(ctx, nil, nil)
		require.NoError(t, err)

		require.Len(t, revenue, 2)
		assert.Equal(t, 2026, revenue[0].Year)
		assert.Equal(t, 3, revenue[0].Month)
		assert.Equal(t, int64(2), revenue[0].Count)
		assert.True(t, revenue[0].Revenue.Equal(decimal.NewFromInt(2360)), "revenue was %s", revenue[0].Revenue)
		assert.Equal(t, 1, revenue[1].Month)
		assert.Equal(t, int64(1), revenue[1].Count)
	})

	t.Run("honors the date range", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		revenue, err := repo.RevenueByMonth(ctx, &start, nil)
		require.NoError(t, err)

		require.Len(t, revenue, 1)
		assert.Equal(t, 3, revenue[0].Month)

		end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		revenue, err = repo.RevenueByMonth(ctx, nil, &end)
		require.NoError(t, err)

		require.Len(t, revenue, 1)
		assert.Equal(t, 1, revenue[0].Month)
	})
}

func TestQuotationRepository_FindAll(t *testing.T) {
	db := setupQuotationTestDB(t)
	repo := NewGormQuotationRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	pending := newTestQuotation(t, "QT-2026-0010")
	pending.ClientID = clientID
	require.NoError(t, pending.SetStatus(sales.QuotationStatusPending))
	require.NoError(t, repo.Save(ctx, pending))

	draft := newTestQuotation(t, "QT-2026-0011")
	draft.ProjectName = "Sunrise Villa"
	require.NoError(t, repo.Save(ctx, draft))

	t.Run("filters by status and client", func(t *testing.T) {
		filter := shared.DefaultFilter().
			WithFilter("status", "Pending").
			WithFilter("client_id", clientID)
		page, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "QT-2026-0010", page.Items[0].QuotationNumber)
	})

	t.Run("searches by number and project name", func(t *testing.T) {
		page, err := repo.FindAll(ctx, shared.Filter{Search: "sunrise"})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		assert.Equal(t, "Sunrise Villa", page.Items[0].ProjectName)
	})
}
