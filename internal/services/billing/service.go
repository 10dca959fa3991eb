package billing

import (
	"time"

	"supermarket-billing-backend/internal/models"
	"supermarket-billing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillingService struct {
	invoiceRepo  *repository.InvoiceRepository
	customerRepo *repository.CustomerRepository
	db           *gorm.DB
}

func NewBillingService(
	invoiceRepo *repository.InvoiceRepository,
	customerRepo *repository.CustomerRepository,
) *BillingService {
	return &BillingService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		db:           invoiceRepo.DB(),
	}
}

type CreateInvoiceInput struct {
	CustomerID     *uuid.UUID
	StaffUsername  string
	StaffName      string
	DueDate        time.Time
	TaxRate        decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string
	Notes          string
}

type UpdateInvoiceInput struct {
	CustomerID     *uuid.UUID
	DueDate        time.Time
	TaxRate        decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string
	Notes          string
}

// CreateInvoice persists a new invoice with a generated invoice number and
// fully recomputed derived fields. A number collision fails the write with
// the unique-index violation; the caller retries the whole creation.
func (s *BillingService) CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error) {
	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(*input.CustomerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	inv := &models.Invoice{
		ID:             uuid.New(),
		InvoiceNumber:  GenerateInvoiceNumber(now),
		CustomerID:     input.CustomerID,
		StaffUsername:  input.StaffUsername,
		StaffName:      input.StaffName,
		DueDate:        input.DueDate,
		TaxRate:        input.TaxRate,
		DiscountAmount: input.DiscountAmount,
		PaymentStatus:  models.StatusPending,
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
	}
	RecomputeTotals(inv, now)

	if err := s.db.Create(inv).Error; err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("staff", inv.StaffUsername).
		Msg("invoice created")
	return inv, nil
}

// UpdateInvoice edits the caller-settable fields and recomputes the derived
// ones, holding the invoice row locked for the whole read-modify-write.
func (s *BillingService) UpdateInvoice(id uuid.UUID, input UpdateInvoiceInput) (*models.Invoice, error) {
	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(*input.CustomerID); err != nil {
			return nil, err
		}
	}

	var inv *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = lockInvoice(tx, id)
		if err != nil {
			return err
		}

		inv.CustomerID = input.CustomerID
		inv.DueDate = input.DueDate
		inv.TaxRate = input.TaxRate
		inv.DiscountAmount = input.DiscountAmount
		inv.PaymentMethod = input.PaymentMethod
		inv.Notes = input.Notes

		RecomputeTotals(inv, time.Now())
		return tx.Save(inv).Error
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CancelInvoice marks the invoice cancelled. Totals are left as they are;
// a cancelled invoice past its due date is never flipped to overdue.
func (s *BillingService) CancelInvoice(id uuid.UUID, performedBy string) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = lockInvoice(tx, id)
		if err != nil {
			return err
		}

		inv.PaymentStatus = models.StatusCancelled
		if err := tx.Save(inv).Error; err != nil {
			return err
		}

		return s.writeAudit(tx, &inv.ID, "invoice_cancelled", performedBy, map[string]interface{}{
			"invoice_number": inv.InvoiceNumber,
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// AddItem persists a line item and cascades the subtotal recompute onto the
// parent invoice. The whole sequence runs in one transaction with the
// invoice row locked, so concurrent item writes cannot leave a stale sum.
func (s *BillingService) AddItem(invoiceID uuid.UUID, description string, quantity, unitPrice decimal.Decimal, performedBy string) (*models.InvoiceItem, error) {
	item := &models.InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  LineTotal(quantity, unitPrice),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}

		if err := s.recomputeLocked(tx, inv); err != nil {
			return err
		}

		return s.writeAudit(tx, &inv.ID, "item_added", performedBy, map[string]interface{}{
			"item_id":     item.ID.String(),
			"description": item.Description,
			"total_price": item.TotalPrice,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a line item and runs the same recompute path as a
// creation, keeping deletion symmetric with addition.
func (s *BillingService) DeleteItem(invoiceID, itemID uuid.UUID, performedBy string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		var item models.InvoiceItem
		if err := tx.First(&item, "id = ? AND invoice_id = ?", itemID, invoiceID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		if err := s.recomputeLocked(tx, inv); err != nil {
			return err
		}

		return s.writeAudit(tx, &inv.ID, "item_removed", performedBy, map[string]interface{}{
			"item_id":     item.ID.String(),
			"description": item.Description,
		})
	})
}

// AddPayment records a payment and cascades the paid-amount recompute onto
// the invoice. PaymentDate is fixed at creation.
func (s *BillingService) AddPayment(invoiceID uuid.UUID, amount decimal.Decimal, method, transactionID, notes, performedBy string) (*models.Payment, error) {
	payment := &models.Payment{
		ID:            uuid.New(),
		InvoiceID:     invoiceID,
		Amount:        amount,
		PaymentMethod: method,
		TransactionID: transactionID,
		PaymentDate:   time.Now(),
		Notes:         notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if err := s.recomputeLocked(tx, inv); err != nil {
			return err
		}

		return s.writeAudit(tx, &inv.ID, "payment_recorded", performedBy, map[string]interface{}{
			"payment_id":     payment.ID.String(),
			"amount":         payment.Amount,
			"payment_method": payment.PaymentMethod,
			"new_status":     inv.PaymentStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice_id", invoiceID.String()).
		Str("amount", amount.String()).
		Msg("payment recorded")
	return payment, nil
}

// RecomputeInvoice is the explicit recompute operation: it re-sums the
// current children and rewrites the derived fields under the row lock.
func (s *BillingService) RecomputeInvoice(id uuid.UUID) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = lockInvoice(tx, id)
		if err != nil {
			return err
		}
		return s.recomputeLocked(tx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// recomputeLocked re-derives subtotal and paid amount as full sums over the
// invoice's current children, applies the totals/status math, and saves.
// Callers must already hold the invoice row lock on tx.
func (s *BillingService) recomputeLocked(tx *gorm.DB, inv *models.Invoice) error {
	items, err := s.invoiceRepo.ItemsOf(tx, inv.ID)
	if err != nil {
		return err
	}
	payments, err := s.invoiceRepo.PaymentsOf(tx, inv.ID)
	if err != nil {
		return err
	}

	inv.Subtotal = SubtotalOf(items)
	inv.PaidAmount = TotalPaid(payments)
	RecomputeTotals(inv, time.Now())

	return tx.Save(inv).Error
}

func (s *BillingService) GetInvoice(id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetAggregate(id)
}

func (s *BillingService) ListInvoices(status string, startDate, endDate *time.Time) ([]models.Invoice, error) {
	return s.invoiceRepo.List(status, startDate, endDate)
}

type DashboardStats struct {
	TodaySales      decimal.Decimal `json:"today_sales"`
	MonthlySales    decimal.Decimal `json:"monthly_sales"`
	PendingInvoices int64           `json:"pending_invoices"`
	OverdueInvoices int64           `json:"overdue_invoices"`
}

// GetDashboardStats aggregates today's and month-to-date sales along with
// pending/overdue counts for the billing dashboard.
func (s *BillingService) GetDashboardStats() (DashboardStats, error) {
	var stats DashboardStats

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	row := s.db.Model(&models.Invoice{}).
		Where("created_at >= ?", today).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&stats.TodaySales); err != nil {
		return stats, err
	}

	row = s.db.Model(&models.Invoice{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&stats.MonthlySales); err != nil {
		return stats, err
	}

	if err := s.db.Model(&models.Invoice{}).
		Where("payment_status = ?", models.StatusPending).
		Count(&stats.PendingInvoices).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.Invoice{}).
		Where("payment_status = ?", models.StatusOverdue).
		Count(&stats.OverdueInvoices).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (s *BillingService) writeAudit(tx *gorm.DB, invoiceID *uuid.UUID, action, performedBy string, details map[string]interface{}) error {
	entry, err := models.NewBillingAuditLog(invoiceID, action, performedBy, details)
	if err != nil {
		return err
	}
	return tx.Create(entry).Error
}

func lockInvoice(tx *gorm.DB, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
