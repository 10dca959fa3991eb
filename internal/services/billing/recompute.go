package billing

import (
	"fmt"
	"strings"
	"time"

	"supermarket-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineTotal computes an item's total price from quantity and unit price,
// rounded to 2 decimal places.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// SubtotalOf sums the line totals of the complete child set. Both item
// additions and deletions run their cascade through this, so the invoice
// subtotal always equals the sum over the items that currently exist.
func SubtotalOf(items []models.InvoiceItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	return subtotal
}

// TotalPaid sums the amounts of the complete payment set.
func TotalPaid(payments []models.Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, payment := range payments {
		paid = paid.Add(payment.Amount)
	}
	return paid
}

// RecomputeTotals rewrites the invoice's derived fields from its current
// inputs: subtotal, tax rate, discount, paid amount, due date and current
// payment status. It is idempotent; running it twice with unchanged inputs
// leaves the invoice unchanged.
//
// Status rules:
//   - paid when a positive paid amount covers the total (overpayment is
//     still just paid)
//   - partial when something has been paid but not everything
//   - overdue when the due date has passed and the invoice was still
//     pending; cancelled or otherwise non-pending invoices are left alone
func RecomputeTotals(inv *models.Invoice, now time.Time) {
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(oneHundred).Round(2)
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount)

	switch {
	case inv.PaidAmount.IsPositive() && inv.PaidAmount.GreaterThanOrEqual(inv.TotalAmount):
		inv.PaymentStatus = models.StatusPaid
	case inv.PaidAmount.IsPositive():
		inv.PaymentStatus = models.StatusPartial
	case inv.DueDate.Before(now) && inv.PaymentStatus == models.StatusPending:
		inv.PaymentStatus = models.StatusOverdue
	}
}

// GenerateInvoiceNumber returns a number of the form INV-YYYYMMDD-XXXXXXXX,
// where the suffix is 8 uppercase hex characters. Collisions are not checked
// here; the unique index on invoice_number rejects them at write time.
func GenerateInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}
