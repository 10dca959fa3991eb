package ledger

import (
	"time"

	"supermarket-billing-backend/internal/models"
	"supermarket-billing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService manages the receivable/payable side ledgers. Rows here are
// created and settled only by explicit calls; nothing is derived from
// invoice payment status.
type LedgerService struct {
	repo *repository.LedgerRepository
	db   *gorm.DB
}

func NewLedgerService(repo *repository.LedgerRepository) *LedgerService {
	return &LedgerService{
		repo: repo,
		db:   repo.DB(),
	}
}

func (s *LedgerService) CreateReceivable(customerID, invoiceID uuid.UUID, amountDue decimal.Decimal, dueDate time.Time) (*models.AccountsReceivable, error) {
	ar := &models.AccountsReceivable{
		ID:         uuid.New(),
		CustomerID: customerID,
		InvoiceID:  invoiceID,
		AmountDue:  amountDue,
		DueDate:    dueDate,
	}
	if err := s.repo.CreateReceivable(ar); err != nil {
		return nil, err
	}
	return ar, nil
}

// SettleReceivable flags the row settled and stamps the settlement time.
// The settlement and its audit entry are written in one transaction.
func (s *LedgerService) SettleReceivable(id uuid.UUID, performedBy string) (*models.AccountsReceivable, error) {
	ar, err := s.repo.GetReceivable(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ar.IsSettled = true
	ar.SettledDate = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ar).Error; err != nil {
			return err
		}
		return s.writeAudit(tx, &ar.InvoiceID, "receivable_settled", performedBy, map[string]interface{}{
			"receivable_id": ar.ID.String(),
			"customer_id":   ar.CustomerID.String(),
			"amount_due":    ar.AmountDue,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("receivable_id", id.String()).Msg("receivable settled")
	return ar, nil
}

func (s *LedgerService) ListReceivables(includeSettled bool) ([]models.AccountsReceivable, error) {
	return s.repo.ListReceivables(includeSettled)
}

func (s *LedgerService) CreatePayable(staffUsername, description string, amountDue decimal.Decimal, dueDate time.Time) (*models.AccountsPayable, error) {
	ap := &models.AccountsPayable{
		ID:            uuid.New(),
		StaffUsername: staffUsername,
		Description:   description,
		AmountDue:     amountDue,
		DueDate:       dueDate,
	}
	if err := s.repo.CreatePayable(ap); err != nil {
		return nil, err
	}
	return ap, nil
}

// SettlePayable flags the row paid and stamps the payment time, writing
// the audit entry in the same transaction.
func (s *LedgerService) SettlePayable(id uuid.UUID, performedBy string) (*models.AccountsPayable, error) {
	ap, err := s.repo.GetPayable(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ap.IsPaid = true
	ap.PaidDate = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		return s.writeAudit(tx, nil, "payable_settled", performedBy, map[string]interface{}{
			"payable_id":     ap.ID.String(),
			"staff_username": ap.StaffUsername,
			"amount_due":     ap.AmountDue,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("payable_id", id.String()).Msg("payable settled")
	return ap, nil
}

func (s *LedgerService) writeAudit(tx *gorm.DB, invoiceID *uuid.UUID, action, performedBy string, details map[string]interface{}) error {
	entry, err := models.NewBillingAuditLog(invoiceID, action, performedBy, details)
	if err != nil {
		return err
	}
	return tx.Create(entry).Error
}

func (s *LedgerService) ListPayables(includePaid bool) ([]models.AccountsPayable, error) {
	return s.repo.ListPayables(includePaid)
}
