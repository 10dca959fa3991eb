package handler

import (
	"errors"
	"net/http"
	"time"

	"supermarket-billing-backend/internal/auth"
	billing "supermarket-billing-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultTaxRate applies when a create/update payload omits tax_rate.
var defaultTaxRate = decimal.NewFromFloat(8.25)

type BillingHandler struct {
	service *billing.BillingService
}

func NewBillingHandler(s *billing.BillingService) *BillingHandler {
	return &BillingHandler{service: s}
}

func (h *BillingHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	status := c.Query("status")

	startDate, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	invoices, err := h.service.ListInvoices(status, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

type invoicePayload struct {
	CustomerID     string           `json:"customer_id"` // optional, empty means walk-in
	DueDate        string           `json:"due_date"`    // "2006-01-02" or RFC3339
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	PaymentMethod  string           `json:"payment_method"`
	Notes          string           `json:"notes"`
}

func (p *invoicePayload) validate(c *gin.Context) (customerID *uuid.UUID, dueDate time.Time, taxRate decimal.Decimal, ok bool) {
	if p.CustomerID != "" {
		id, err := uuid.Parse(p.CustomerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
			return nil, time.Time{}, decimal.Decimal{}, false
		}
		customerID = &id
	}

	dueDate, err := parseDate(p.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date, expected yyyy-mm-dd"})
		return nil, time.Time{}, decimal.Decimal{}, false
	}

	taxRate = defaultTaxRate
	if p.TaxRate != nil {
		taxRate = *p.TaxRate
	}
	if taxRate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tax rate must not be negative"})
		return nil, time.Time{}, decimal.Decimal{}, false
	}
	if p.DiscountAmount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount amount must not be negative"})
		return nil, time.Time{}, decimal.Decimal{}, false
	}

	return customerID, dueDate, taxRate, true
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var payload invoicePayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customerID, dueDate, taxRate, ok := payload.validate(c)
	if !ok {
		return
	}

	staff := auth.CurrentStaff(c)
	invoice, err := h.service.CreateInvoice(billing.CreateInvoiceInput{
		CustomerID:     customerID,
		StaffUsername:  staff.Username,
		StaffName:      staff.Name,
		DueDate:        dueDate,
		TaxRate:        taxRate,
		DiscountAmount: payload.DiscountAmount,
		PaymentMethod:  payload.PaymentMethod,
		Notes:          payload.Notes,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "invoice number collision, retry the creation"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "invoice created", "invoice": invoice})
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.GetInvoice(id)
	if err != nil {
		respondError(c, err, "invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload invoicePayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customerID, dueDate, taxRate, valid := payload.validate(c)
	if !valid {
		return
	}

	invoice, err := h.service.UpdateInvoice(id, billing.UpdateInvoiceInput{
		CustomerID:     customerID,
		DueDate:        dueDate,
		TaxRate:        taxRate,
		DiscountAmount: payload.DiscountAmount,
		PaymentMethod:  payload.PaymentMethod,
		Notes:          payload.Notes,
	})
	if err != nil {
		respondError(c, err, "invoice or customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invoice updated", "invoice": invoice})
}

func (h *BillingHandler) CancelInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	staff := auth.CurrentStaff(c)
	invoice, err := h.service.CancelInvoice(id, staff.Username)
	if err != nil {
		respondError(c, err, "invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invoice cancelled", "invoice": invoice})
}

func (h *BillingHandler) RecomputeInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.RecomputeInvoice(id)
	if err != nil {
		respondError(c, err, "invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "invoice recomputed", "invoice": invoice})
}

func (h *BillingHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload struct {
		Description string          `json:"description"`
		Quantity    decimal.Decimal `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}
	if !payload.Quantity.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	if !payload.UnitPrice.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit price must be positive"})
		return
	}

	staff := auth.CurrentStaff(c)
	item, err := h.service.AddItem(id, payload.Description, payload.Quantity, payload.UnitPrice, staff.Username)
	if err != nil {
		respondError(c, err, "invoice not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "item added", "item": item})
}

func (h *BillingHandler) DeleteItem(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	staff := auth.CurrentStaff(c)
	if err := h.service.DeleteItem(invoiceID, itemID, staff.Username); err != nil {
		respondError(c, err, "invoice or item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *BillingHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload struct {
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"payment_method"`
		TransactionID string          `json:"transaction_id"`
		Notes         string          `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if !payload.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if payload.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment method is required"})
		return
	}

	staff := auth.CurrentStaff(c)
	payment, err := h.service.AddPayment(id, payload.Amount, payload.PaymentMethod, payload.TransactionID, payload.Notes, staff.Username)
	if err != nil {
		respondError(c, err, "invoice not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "payment": payment})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", expected yyyy-mm-dd"})
		return nil, false
	}
	return &t, true
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	return t, err
}

func respondError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
