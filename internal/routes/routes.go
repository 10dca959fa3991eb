package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supermarket-billing-backend/internal/auth"
	handler "supermarket-billing-backend/internal/handlers"
	"supermarket-billing-backend/internal/repository"
	billing "supermarket-billing-backend/internal/services/billing"
	ledger "supermarket-billing-backend/internal/services/ledger"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtCfg auth.Config) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	billingService := billing.NewBillingService(invoiceRepo, customerRepo)
	ledgerService := ledger.NewLedgerService(ledgerRepo)

	billingHandler := handler.NewBillingHandler(billingService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	staff := api.Group("", auth.RequireStaff(jwtCfg))

	staff.GET("/billing/dashboard", billingHandler.Dashboard)

	// Invoice routes
	invoices := staff.Group("/invoices")
	{
		invoices.GET("", billingHandler.ListInvoices)
		invoices.POST("", billingHandler.CreateInvoice)
		invoices.GET("/:id", billingHandler.GetInvoice)
		invoices.PUT("/:id", billingHandler.UpdateInvoice)
		invoices.POST("/:id/cancel", billingHandler.CancelInvoice)
		invoices.POST("/:id/recompute", billingHandler.RecomputeInvoice)
		invoices.POST("/:id/items", billingHandler.AddItem)
		invoices.DELETE("/:id/items/:itemId", billingHandler.DeleteItem)
		invoices.POST("/:id/payments", billingHandler.AddPayment)
	}

	// Customer routes
	customers := staff.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.POST("", customerHandler.Create)
		customers.GET("/:id", customerHandler.Get)
	}

	// Receivable/payable ledger routes
	ledgerRoutes := staff.Group("/ledger")
	{
		ledgerRoutes.GET("/receivables", ledgerHandler.ListReceivables)
		ledgerRoutes.POST("/receivables", ledgerHandler.CreateReceivable)
		ledgerRoutes.POST("/receivables/:id/settle", ledgerHandler.SettleReceivable)
		ledgerRoutes.GET("/payables", ledgerHandler.ListPayables)
		ledgerRoutes.POST("/payables", ledgerHandler.CreatePayable)
		ledgerRoutes.POST("/payables/:id/settle", ledgerHandler.SettlePayable)
	}
}
