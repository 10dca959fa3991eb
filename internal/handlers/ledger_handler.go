package handler

import (
	"net/http"

	"supermarket-billing-backend/internal/auth"
	ledger "supermarket-billing-backend/internal/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	service *ledger.LedgerService
}

func NewLedgerHandler(s *ledger.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

func (h *LedgerHandler) ListReceivables(c *gin.Context) {
	includeSettled := c.Query("include_settled") == "true"
	rows, err := h.service.ListReceivables(includeSettled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivables": rows})
}

func (h *LedgerHandler) CreateReceivable(c *gin.Context) {
	var payload struct {
		CustomerID string          `json:"customer_id"`
		InvoiceID  string          `json:"invoice_id"`
		AmountDue  decimal.Decimal `json:"amount_due"`
		DueDate    string          `json:"due_date"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}
	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}
	if !payload.AmountDue.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount due must be positive"})
		return
	}
	dueDate, err := parseDate(payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected yyyy-mm-dd"})
		return
	}

	ar, err := h.service.CreateReceivable(customerID, invoiceID, payload.AmountDue, dueDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "receivable created", "receivable": ar})
}

func (h *LedgerHandler) SettleReceivable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	staff := auth.CurrentStaff(c)
	ar, err := h.service.SettleReceivable(id, staff.Username)
	if err != nil {
		respondError(c, err, "receivable not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "receivable settled", "receivable": ar})
}

func (h *LedgerHandler) ListPayables(c *gin.Context) {
	includePaid := c.Query("include_paid") == "true"
	rows, err := h.service.ListPayables(includePaid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payables": rows})
}

func (h *LedgerHandler) CreatePayable(c *gin.Context) {
	var payload struct {
		StaffUsername string          `json:"staff_username"`
		Description   string          `json:"description"`
		AmountDue     decimal.Decimal `json:"amount_due"`
		DueDate       string          `json:"due_date"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.StaffUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff username is required"})
		return
	}
	if !payload.AmountDue.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount due must be positive"})
		return
	}
	dueDate, err := parseDate(payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected yyyy-mm-dd"})
		return
	}

	ap, err := h.service.CreatePayable(payload.StaffUsername, payload.Description, payload.AmountDue, dueDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "payable created", "payable": ap})
}

func (h *LedgerHandler) SettlePayable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	staff := auth.CurrentStaff(c)
	ap, err := h.service.SettlePayable(id, staff.Username)
	if err != nil {
		respondError(c, err, "payable not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payable settled", "payable": ap})
}
