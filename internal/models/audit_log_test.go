package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBillingAuditLog(t *testing.T) {
	invoiceID := uuid.New()

	entry, err := NewBillingAuditLog(&invoiceID, "receivable_settled", "cashier1", map[string]interface{}{
		"receivable_id": "abc",
		"amount_due":    "20.00",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, &invoiceID, entry.InvoiceID)
	assert.Equal(t, "receivable_settled", entry.Action)
	assert.Equal(t, "cashier1", entry.PerformedBy)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Contains(t, string(entry.Details), "20.00")
}

func TestNewBillingAuditLog_NilInvoice(t *testing.T) {
	entry, err := NewBillingAuditLog(nil, "payable_settled", "manager1", nil)
	require.NoError(t, err)
	assert.Nil(t, entry.InvoiceID)
}

func TestNewBillingAuditLog_UnserializableDetails(t *testing.T) {
	_, err := NewBillingAuditLog(nil, "item_added", "cashier1", map[string]interface{}{
		"bad": make(chan int),
	})
	assert.Error(t, err)
}
