package repository

import (
	"time"

	"supermarket-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetch a single invoice by ID
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetAggregate loads an invoice with its items, payments and customer
// preloaded. This is the snapshot consumed by receipts and detail views.
func (r *InvoiceRepository) GetAggregate(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.
		Preload("Items").
		Preload("Payments").
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns invoices filtered by payment status and an inclusive
// creation-date range, newest first.
func (r *InvoiceRepository) List(status string, startDate, endDate *time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice

	dbQuery := r.db.Model(&models.Invoice{}).Preload("Customer").Order("created_at DESC")

	if status != "" {
		dbQuery = dbQuery.Where("payment_status = ?", status)
	}
	if startDate != nil {
		dbQuery = dbQuery.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		// inclusive of the whole end day
		dbQuery = dbQuery.Where("created_at < ?", endDate.AddDate(0, 0, 1))
	}

	err := dbQuery.Find(&invoices).Error
	return invoices, err
}

// ItemsOf loads an invoice's complete current item set. Runs on the
// supplied tx so callers can keep it inside the invoice-row lock.
func (r *InvoiceRepository) ItemsOf(tx *gorm.DB, invoiceID uuid.UUID) ([]models.InvoiceItem, error) {
	var items []models.InvoiceItem
	err := tx.Where("invoice_id = ?", invoiceID).Find(&items).Error
	return items, err
}

// PaymentsOf loads an invoice's complete current payment set.
func (r *InvoiceRepository) PaymentsOf(tx *gorm.DB, invoiceID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error
	return payments, err
}
