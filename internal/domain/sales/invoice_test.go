package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(uuid.New(), uuid.New(), "Villa Renovation", issue, issue.AddDate(0, 0, 15))
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft invoice", func(t *testing.T) {
		inv := newTestInvoice(t)

		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.True(t, inv.AmountPaid.IsZero())
	})

	t.Run("rejects due date before issue date", func(t *testing.T) {
		issue := time.Now()
		inv, err := NewInvoice(uuid.New(), uuid.New(), "Villa Renovation", issue, issue.AddDate(0, 0, -1))

		assert.Error(t, err)
		assert.Nil(t, inv)
	})
}

func TestInvoiceTotals(t *testing.T) {
	inv := newTestInvoice(t)
	now := inv.IssueDate

	_, err := inv.AddItem("Modular Kitchen", decimal.NewFromInt(1), decimal.NewFromInt(100000), decimal.NewFromInt(18), now)
	require.NoError(t, err)
	_, err = inv.AddItem("Site Supervision", decimal.NewFromInt(2), decimal.NewFromInt(5000), decimal.NewFromInt(18), now)
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(110000)), "subtotal was %s", inv.Subtotal)
	assert.True(t, inv.TotalTax.Equal(decimal.NewFromInt(19800)), "tax was %s", inv.TotalTax)
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(129800)), "grand total was %s", inv.GrandTotal)

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := inv.AddItem("Bad Line", decimal.Zero, decimal.NewFromInt(100), decimal.NewFromInt(18), now)

		assert.Error(t, err)
	})

	t.Run("grand total is always subtotal plus tax", func(t *testing.T) {
		assert.True(t, inv.GrandTotal.Equal(inv.Subtotal.Add(inv.TotalTax)),
			"grand total %s, subtotal %s, tax %s", inv.GrandTotal, inv.Subtotal, inv.TotalTax)
	})

	t.Run("an invoice with nothing owed is paid", func(t *testing.T) {
		inv := newTestInvoice(t)

		inv.Recalculate(inv.IssueDate)

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})
}

func TestInvoiceStatusValues(t *testing.T) {
	for _, status := range []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusUnpaid, InvoiceStatusPaid,
		InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusCancelled,
	} {
		assert.True(t, status.IsValid(), "status %s", status)
	}
	assert.False(t, InvoiceStatus("Refunded").IsValid())
}

func TestInvoicePayments(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		inv := newTestInvoice(t)
		now := inv.IssueDate
		_, err := inv.AddItem("Kitchen", decimal.NewFromInt(1), decimal.NewFromInt(100000), decimal.Zero, now)
		require.NoError(t, err)

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(40000), PaymentMethodUPI, now))

		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.Balance().Equal(decimal.NewFromInt(60000)))
		assert.Nil(t, inv.PaidAt)
	})

	t.Run("payments accumulate to paid", func(t *testing.T) {
		inv := newTestInvoice(t)
		now := inv.IssueDate
		_, err := inv.AddItem("Kitchen", decimal.NewFromInt(1), decimal.NewFromInt(100000), decimal.Zero, now)
		require.NoError(t, err)

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(40000), PaymentMethodUPI, now))
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(60000), PaymentMethodBankTransfer, now))

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.NotNil(t, inv.PaidAt)
		assert.Equal(t, PaymentMethodBankTransfer, *inv.PaymentMethod)
	})

	t.Run("paid timestamp set exactly once", func(t *testing.T) {
		inv := newTestInvoice(t)
		now := inv.IssueDate
		_, err := inv.AddItem("Kitchen", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, now)
		require.NoError(t, err)

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(100), PaymentMethodCash, now))
		first := *inv.PaidAt
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(50), PaymentMethodCash, now.Add(time.Hour)))

		assert.Equal(t, first, *inv.PaidAt)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := newTestInvoice(t)

		assert.Error(t, inv.RecordPayment(decimal.Zero, PaymentMethodCash, time.Now()))
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		inv := newTestInvoice(t)

		assert.Error(t, inv.RecordPayment(decimal.NewFromInt(10), PaymentMethod("Barter"), time.Now()))
	})
}

func TestInvoiceOverdue(t *testing.T) {
	inv := newTestInvoice(t)
	_, err := inv.AddItem("Kitchen", decimal.NewFromInt(1), decimal.NewFromInt(100000), decimal.Zero, inv.IssueDate)
	require.NoError(t, err)

	t.Run("unpaid past due becomes overdue", func(t *testing.T) {
		inv.Recalculate(inv.DueDate.AddDate(0, 0, 1))

		assert.Equal(t, InvoiceStatusOverdue, inv.Status)
	})

	t.Run("partial payment wins over overdue", func(t *testing.T) {
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(1000), PaymentMethodCash, inv.DueDate.AddDate(0, 0, 2)))

		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	})
}

func TestNewInvoiceFromQuotation(t *testing.T) {
	createQuotation := func(t *testing.T) *Quotation {
		t.Helper()
		q, err := NewQuotation(uuid.New(), uuid.New(), "Villa Renovation")
		require.NoError(t, err)
		_, err = q.AddItem("Modular Kitchen", "SCM", decimal.NewFromInt(100), decimal.NewFromInt(850))
		require.NoError(t, err)
		return q
	}

	t.Run("carries over client project and items", func(t *testing.T) {
		q := createQuotation(t)
		require.NoError(t, q.Approve(uuid.New(), time.Now()))
		issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		inv, err := NewInvoiceFromQuotation(q, uuid.New(), issue)

		require.NoError(t, err)
		assert.Equal(t, q.ClientID, inv.ClientID)
		assert.Equal(t, q.ID, *inv.QuotationID)
		assert.Equal(t, "Villa Renovation", inv.ProjectName)
		assert.Len(t, inv.Items, 1)
		assert.Equal(t, issue.AddDate(0, 0, 15), inv.DueDate)
		// 100*850 = 85000 plus 18% tax
		assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(100300)), "grand total was %s", inv.GrandTotal)
	})

	t.Run("quotation discount does not leak into the invoice", func(t *testing.T) {
		q, err := NewQuotation(uuid.New(), uuid.New(), "Villa Renovation")
		require.NoError(t, err)
		_, err = q.AddItem("Wardrobe", "pieces", decimal.NewFromInt(2), decimal.NewFromInt(500))
		require.NoError(t, err)
		require.NoError(t, q.SetDiscount(decimal.NewFromInt(100)))
		require.NoError(t, q.Approve(uuid.New(), time.Now()))

		inv, err := NewInvoiceFromQuotation(q, uuid.New(), time.Now())

		require.NoError(t, err)
		// 2*500 = 1000 plus 18% tax, the discount stays on the quotation
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal was %s", inv.Subtotal)
		assert.True(t, inv.TotalTax.Equal(decimal.NewFromInt(180)), "tax was %s", inv.TotalTax)
		assert.True(t, inv.GrandTotal.Equal(inv.Subtotal.Add(inv.TotalTax)), "grand total was %s", inv.GrandTotal)
	})

	t.Run("refuses unapproved quotation", func(t *testing.T) {
		q := createQuotation(t)

		inv, err := NewInvoiceFromQuotation(q, uuid.New(), time.Now())

		assert.Error(t, err)
		assert.Nil(t, inv)
	})
}
