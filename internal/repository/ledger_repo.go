package repository

import (
	"supermarket-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) DB() *gorm.DB {
	return r.db
}

func (r *LedgerRepository) CreateReceivable(ar *models.AccountsReceivable) error {
	return r.db.Create(ar).Error
}

func (r *LedgerRepository) GetReceivable(id uuid.UUID) (*models.AccountsReceivable, error) {
	var ar models.AccountsReceivable
	err := r.db.First(&ar, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

// ListReceivables returns unsettled rows unless includeSettled is set.
func (r *LedgerRepository) ListReceivables(includeSettled bool) ([]models.AccountsReceivable, error) {
	var rows []models.AccountsReceivable
	dbQuery := r.db.Model(&models.AccountsReceivable{}).Preload("Customer").Order("due_date ASC")
	if !includeSettled {
		dbQuery = dbQuery.Where("is_settled = ?", false)
	}
	err := dbQuery.Find(&rows).Error
	return rows, err
}

func (r *LedgerRepository) CreatePayable(ap *models.AccountsPayable) error {
	return r.db.Create(ap).Error
}

func (r *LedgerRepository) GetPayable(id uuid.UUID) (*models.AccountsPayable, error) {
	var ap models.AccountsPayable
	err := r.db.First(&ap, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// ListPayables returns unpaid rows unless includePaid is set.
func (r *LedgerRepository) ListPayables(includePaid bool) ([]models.AccountsPayable, error) {
	var rows []models.AccountsPayable
	dbQuery := r.db.Model(&models.AccountsPayable{}).Order("due_date ASC")
	if !includePaid {
		dbQuery = dbQuery.Where("is_paid = ?", false)
	}
	err := dbQuery.Find(&rows).Error
	return rows, err
}
