package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountsReceivable is an independently managed ledger row for money owed
// by a customer. It is never created or settled automatically by invoice
// or payment writes.
type AccountsReceivable struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	Customer    *Customer       `json:"customer,omitempty"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index" json:"invoice_id"`
	AmountDue   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_due"`
	DueDate     time.Time       `json:"due_date"`
	IsSettled   bool            `gorm:"index;default:false" json:"is_settled"`
	SettledDate *time.Time      `json:"settled_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AccountsPayable tracks money owed to a staff member, with the same
// manual lifecycle as AccountsReceivable.
type AccountsPayable struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StaffUsername string          `gorm:"index" json:"staff_username"`
	Description   string          `json:"description"`
	AmountDue     decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_due"`
	DueDate       time.Time       `json:"due_date"`
	IsPaid        bool            `gorm:"index;default:false" json:"is_paid"`
	PaidDate      *time.Time      `json:"paid_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
