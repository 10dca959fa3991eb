package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusPartial   = "partial"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodMobile       = "mobile"
	MethodQR           = "qr"
	MethodBankTransfer = "bank_transfer"
)

// Invoice carries the derived totals recomputed on every item or payment
// write. Subtotal and PaidAmount are always full sums over the current
// children, never incremental deltas.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber string     `gorm:"uniqueIndex" json:"invoice_number"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"` // nil means walk-in
	Customer      *Customer  `json:"customer,omitempty"`
	StaffUsername string     `gorm:"index" json:"staff_username"`
	StaffName     string     `json:"staff_name"`

	DueDate time.Time `json:"due_date"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2)" json:"tax_rate"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`

	PaymentStatus string          `gorm:"index;default:pending" json:"payment_status"`
	PaymentMethod string          `json:"payment_method"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"paid_amount"`

	Notes string `json:"notes"`

	Items    []InvoiceItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment     `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}
