package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Validation runs before any persistence, so these requests must be
// rejected without the handler ever reaching its service.
func TestAddItemValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewBillingHandler(nil)
	r := gin.New()
	r.POST("/invoices/:id/items", h.AddItem)

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	const invoicePath = "/invoices/6cf7f5ab-7d2e-41a4-9b0f-1c2d3e4f5a6b/items"

	t.Run("bad invoice id", func(t *testing.T) {
		w := post("/invoices/not-a-uuid/items", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := post(invoicePath, `{"quantity": "two"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing description", func(t *testing.T) {
		w := post(invoicePath, `{"quantity": "2", "unit_price": "10.00"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "description")
	})

	t.Run("negative quantity", func(t *testing.T) {
		w := post(invoicePath, `{"description": "milk", "quantity": "-1", "unit_price": "10.00"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "quantity")
	})

	t.Run("zero unit price", func(t *testing.T) {
		w := post(invoicePath, `{"description": "milk", "quantity": "2", "unit_price": "0"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unit price")
	})
}

func TestAddPaymentValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewBillingHandler(nil)
	r := gin.New()
	r.POST("/invoices/:id/payments", h.AddPayment)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/invoices/6cf7f5ab-7d2e-41a4-9b0f-1c2d3e4f5a6b/payments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("zero amount", func(t *testing.T) {
		w := post(`{"amount": "0", "payment_method": "cash"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "amount")
	})

	t.Run("missing method", func(t *testing.T) {
		w := post(`{"amount": "21.65"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "payment method")
	})
}

// A missing record anywhere in a write path (the invoice itself, or a
// customer referenced by a create/update) must surface as 404, never 500.
func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("record not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, gorm.ErrRecordNotFound, "invoice or customer not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "invoice or customer not found")
	})

	t.Run("anything else maps to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondError(c, errors.New("connection refused"), "invoice not found")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-14")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	d, err = parseDate("2025-03-14T09:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 9, d.Hour())

	_, err = parseDate("14-03-2025")
	assert.Error(t, err)
}
