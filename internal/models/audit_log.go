package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BillingAuditLog is an append-only trail of billing actions (items added
// or removed, payments recorded, cancellations, ledger settlements).
type BillingAuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   *uuid.UUID     `gorm:"type:uuid;index" json:"invoice_id"`
	Action      string         `gorm:"index" json:"action"`
	PerformedBy string         `json:"performed_by"`
	Details     datatypes.JSON `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewBillingAuditLog builds an audit entry with the details map serialised
// into the JSON blob. InvoiceID is nil for entries not tied to an invoice
// (e.g. payable settlements).
func NewBillingAuditLog(invoiceID *uuid.UUID, action, performedBy string, details map[string]interface{}) (*BillingAuditLog, error) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return &BillingAuditLog{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Action:      action,
		PerformedBy: performedBy,
		Details:     detailsJSON,
		CreatedAt:   time.Now(),
	}, nil
}
