package billing

import (
	"regexp"
	"testing"
	"time"

	"supermarket-billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingInvoice(subtotal, taxRate string, dueDate time.Time) *models.Invoice {
	return &models.Invoice{
		Subtotal:      dec(subtotal),
		TaxRate:       dec(taxRate),
		DueDate:       dueDate,
		PaymentStatus: models.StatusPending,
	}
}

func TestLineTotal(t *testing.T) {
	total := LineTotal(dec("2"), dec("10.00"))
	assert.Equal(t, "20.00", total.StringFixed(2))

	// fractional quantities round to cents
	total = LineTotal(dec("1.5"), dec("0.99"))
	assert.Equal(t, "1.49", total.StringFixed(2))
}

func TestRecomputeTotals_TaxAndTotal(t *testing.T) {
	now := time.Now()
	inv := pendingInvoice("20.00", "8.25", now.Add(24*time.Hour))

	RecomputeTotals(inv, now)

	assert.Equal(t, "1.65", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "21.65", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, models.StatusPending, inv.PaymentStatus)
}

func TestRecomputeTotals_DiscountApplied(t *testing.T) {
	now := time.Now()
	inv := pendingInvoice("100.00", "10", now.Add(24*time.Hour))
	inv.DiscountAmount = dec("5.00")

	RecomputeTotals(inv, now)

	assert.Equal(t, "10.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "105.00", inv.TotalAmount.StringFixed(2))
}

func TestRecomputeTotals_PaymentStatus(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	t.Run("full payment marks paid", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", future)
		inv.PaidAmount = dec("21.65")

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusPaid, inv.PaymentStatus)
	})

	t.Run("partial payment marks partial", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", future)
		inv.PaidAmount = dec("10.00")

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusPartial, inv.PaymentStatus)
	})

	t.Run("overpayment is still just paid", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", future)
		inv.PaidAmount = dec("50.00")

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusPaid, inv.PaymentStatus)
	})

	t.Run("payment sum across several payments marks paid", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", future)
		inv.PaidAmount = dec("10.00").Add(dec("11.65"))

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusPaid, inv.PaymentStatus)
	})

	t.Run("past due pending flips to overdue", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", past)

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusOverdue, inv.PaymentStatus)
	})

	t.Run("past due cancelled is left alone", func(t *testing.T) {
		inv := pendingInvoice("20.00", "8.25", past)
		inv.PaymentStatus = models.StatusCancelled

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusCancelled, inv.PaymentStatus)
	})

	t.Run("empty invoice stays pending", func(t *testing.T) {
		inv := pendingInvoice("0", "8.25", future)

		RecomputeTotals(inv, now)
		assert.Equal(t, models.StatusPending, inv.PaymentStatus)
		assert.True(t, inv.TotalAmount.IsZero())
	})
}

func TestSubtotalOf_ItemRemoval(t *testing.T) {
	now := time.Now()

	items := []models.InvoiceItem{
		{Description: "milk", Quantity: dec("2"), UnitPrice: dec("10.00"), TotalPrice: LineTotal(dec("2"), dec("10.00"))},
		{Description: "bread", Quantity: dec("1"), UnitPrice: dec("3.50"), TotalPrice: LineTotal(dec("1"), dec("3.50"))},
	}

	inv := pendingInvoice("0", "8.25", now.Add(24*time.Hour))
	inv.Subtotal = SubtotalOf(items)
	RecomputeTotals(inv, now)

	require.Equal(t, "23.50", inv.Subtotal.StringFixed(2))
	require.Equal(t, "1.94", inv.TaxAmount.StringFixed(2))
	require.Equal(t, "25.44", inv.TotalAmount.StringFixed(2))

	// deleting an item runs the same sum-then-recompute cascade as adding
	// one, so the subtotal tracks the items that still exist
	items = items[:1]
	inv.Subtotal = SubtotalOf(items)
	RecomputeTotals(inv, now)

	assert.Equal(t, "20.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "1.65", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "21.65", inv.TotalAmount.StringFixed(2))

	// all items gone: everything collapses back to zero
	inv.Subtotal = SubtotalOf(nil)
	RecomputeTotals(inv, now)
	assert.True(t, inv.TotalAmount.IsZero())
}

func TestTotalPaid(t *testing.T) {
	payments := []models.Payment{
		{Amount: dec("10.00")},
		{Amount: dec("11.65")},
	}

	assert.Equal(t, "21.65", TotalPaid(payments).StringFixed(2))
	assert.True(t, TotalPaid(nil).IsZero())
}

func TestRecomputeTotals_Idempotent(t *testing.T) {
	now := time.Now()
	inv := pendingInvoice("20.00", "8.25", now.Add(-48*time.Hour))
	inv.DiscountAmount = dec("1.00")
	inv.PaidAmount = dec("5.00")

	RecomputeTotals(inv, now)
	first := *inv

	RecomputeTotals(inv, now)

	assert.True(t, first.TaxAmount.Equal(inv.TaxAmount))
	assert.True(t, first.TotalAmount.Equal(inv.TotalAmount))
	assert.Equal(t, first.PaymentStatus, inv.PaymentStatus)
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	number := GenerateInvoiceNumber(now)

	require.Regexp(t, regexp.MustCompile(`^INV-20250314-[0-9A-F]{8}$`), number)

	// the random suffix should differ between calls
	other := GenerateInvoiceNumber(now)
	assert.NotEqual(t, number, other)
}
